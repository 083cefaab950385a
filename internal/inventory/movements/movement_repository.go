package movements

import (
	"fmt"

	"stockflow/internal/repository"
	custom_error "stockflow/pkg/errors"
	"stockflow/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type MovementRepository interface {
	InsertMovementRecord(tx *goqu.TxDatabase, req models.MovementRequest) (int, error)
	GetMovement(id int) (*models.Movement, error)
	GetMovements(itemID *int, limit int) (*[]models.Movement, error)
	LocationExists(id int) (bool, error)
}

type movementRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) MovementRepository {
	return &movementRepositoryImpl{repository: r}
}

func (r *movementRepositoryImpl) InsertMovementRecord(tx *goqu.TxDatabase, req models.MovementRequest) (int, error) {
	query := tx.Insert("movements").
		Rows(goqu.Record{
			"item_id":          req.ItemID,
			"type":             req.Type,
			"quantity":         req.Quantity,
			"from_location_id": req.FromLocationID,
			"to_location_id":   req.ToLocationID,
			"note":             req.Note,
			"created_by":       req.CreatedBy,
		}).
		Returning("id")

	var movementID int
	if _, err := query.Executor().ScanVal(&movementID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, custom_error.WrapDBError("movement", string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert movement record: %w", err)
	}

	return movementID, nil
}

func (r *movementRepositoryImpl) GetMovement(id int) (*models.Movement, error) {
	var flat models.FlatMovementRecord
	query := r.movementQuery().Where(goqu.Ex{"m.id": id})

	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to select movement from database: %w", err)
	}
	if !found {
		return nil, nil
	}

	movement := flat.TransformToMovement()
	return &movement, nil
}

func (r *movementRepositoryImpl) GetMovements(itemID *int, limit int) (*[]models.Movement, error) {
	query := r.movementQuery().
		Order(goqu.I("m.created_at").Desc(), goqu.I("m.id").Desc()).
		Limit(uint(limit))

	if itemID != nil {
		query = query.Where(goqu.Ex{"m.item_id": *itemID})
	}

	var flatMovements []models.FlatMovementRecord
	if err := query.Executor().ScanStructs(&flatMovements); err != nil {
		return nil, fmt.Errorf("unable to select movements from database: %w", err)
	}

	movements := []models.Movement{}
	for _, flat := range flatMovements {
		movements = append(movements, flat.TransformToMovement())
	}

	return &movements, nil
}

func (r *movementRepositoryImpl) LocationExists(id int) (bool, error) {
	count, err := r.repository.GoquDBWrapper.
		From("locations").
		Where(goqu.Ex{"id": id}).
		Count()
	if err != nil {
		return false, fmt.Errorf("unable to check location existence: %w", err)
	}

	return count > 0, nil
}

func (r *movementRepositoryImpl) movementQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select(
			goqu.I("m.id").As("movement_id"),
			goqu.I("m.item_id").As("item_id"),
			goqu.I("i.name").As("item_name"),
			goqu.I("m.type").As("movement_type"),
			goqu.I("m.quantity").As("quantity"),
			goqu.I("m.from_location_id").As("from_location_id"),
			goqu.I("fl.name").As("from_location_name"),
			goqu.I("m.to_location_id").As("to_location_id"),
			goqu.I("tl.name").As("to_location_name"),
			goqu.I("m.note").As("note"),
			goqu.I("m.created_by").As("created_by"),
			goqu.I("u.fullname").As("created_by_name"),
			goqu.I("m.created_at").As("created_at"),
		).
		From(goqu.T("movements").As("m")).
		LeftJoin(
			goqu.T("items").As("i"),
			goqu.On(goqu.Ex{"m.item_id": goqu.I("i.id")}),
		).
		LeftJoin(
			goqu.T("locations").As("fl"),
			goqu.On(goqu.Ex{"m.from_location_id": goqu.I("fl.id")}),
		).
		LeftJoin(
			goqu.T("locations").As("tl"),
			goqu.On(goqu.Ex{"m.to_location_id": goqu.I("tl.id")}),
		).
		LeftJoin(
			goqu.T("users").As("u"),
			goqu.On(goqu.Ex{"m.created_by": goqu.I("u.id")}),
		)
}
