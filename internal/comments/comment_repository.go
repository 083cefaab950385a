package comments

import (
	"errors"
	"fmt"
	"time"

	"stockflow/internal/repository"
	custom_error "stockflow/pkg/errors"
	"stockflow/pkg/metadata"
	"stockflow/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *CommentRepository {
	return &CommentRepository{repository: r}
}

// EntityExists checks the table behind the entity type for the given id.
func (r *CommentRepository) EntityExists(entityType metadata.EntityType, entityID int) (bool, error) {
	var table string
	switch entityType {
	case metadata.EntityItem:
		table = "items"
	case metadata.EntityMovement:
		table = "movements"
	case metadata.EntityLocation:
		table = "locations"
	default:
		return false, fmt.Errorf("unknown entity type: %s", entityType)
	}

	count, err := r.repository.GoquDBWrapper.
		From(table).
		Where(goqu.Ex{"id": entityID}).
		Count()
	if err != nil {
		return false, fmt.Errorf("unable to check entity existence: %w", err)
	}

	return count > 0, nil
}

func (r *CommentRepository) CreateComment(req models.CommentRequest) (*models.Comment, error) {
	comment := models.Comment{
		EntityType: metadata.EntityType(req.EntityType),
		EntityID:   req.EntityID,
		Text:       req.Text,
		AuthorName: req.AuthorName,
		CreatedBy:  req.CreatedBy,
	}

	query := r.repository.GoquDBWrapper.Insert("comments").
		Rows(goqu.Record{
			"entity_type": req.EntityType,
			"entity_id":   req.EntityID,
			"text":        req.Text,
			"author_name": req.AuthorName,
			"created_by":  req.CreatedBy,
		}).
		Returning("id", "created_at")

	var returned struct {
		ID        int       `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if _, err := query.Executor().ScanStruct(&returned); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("comment", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert comment record: %w", err)
	}
	comment.ID = returned.ID
	comment.CreatedAt = returned.CreatedAt

	return &comment, nil
}

func (r *CommentRepository) GetCommentsByEntity(entityType metadata.EntityType, entityID int) (*[]models.Comment, error) {
	var comments = []models.Comment{}
	query := r.repository.GoquDBWrapper.
		Select("id", "entity_type", "entity_id", "text", "author_name", "created_by", "created_at").
		From("comments").
		Where(goqu.Ex{
			"entity_type": entityType.String(),
			"entity_id":   entityID,
		}).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc())

	if err := query.Executor().ScanStructs(&comments); err != nil {
		return nil, fmt.Errorf("unable to select comments from database: %w", err)
	}

	return &comments, nil
}

func (r *CommentRepository) DeleteComment(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("comments").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}
