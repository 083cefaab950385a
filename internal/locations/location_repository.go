package locations

import (
	"fmt"

	"stockflow/internal/repository"
	custom_error "stockflow/pkg/errors"
	"stockflow/pkg/metadata"
	"stockflow/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type LocationRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *LocationRepository {
	return &LocationRepository{repository: r}
}

func (r *LocationRepository) GetLocations() (*[]models.Location, error) {
	var locations = []models.Location{}
	query := r.locationQuery().Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&locations); err != nil {
		return nil, fmt.Errorf("unable to select locations from database: %w", err)
	}

	return &locations, nil
}

func (r *LocationRepository) GetLocation(id int) (*models.Location, error) {
	var location models.Location
	query := r.locationQuery().Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&location)
	if err != nil {
		return nil, fmt.Errorf("unable to select location from database: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &location, nil
}

func (r *LocationRepository) PersistLocation(req models.LocationRequest) (*models.Location, error) {
	location := models.Location{
		Name:        req.Name,
		Type:        metadata.LocationType(req.Type),
		ParentID:    req.ParentID,
		Address:     req.Address,
		ContactInfo: req.ContactInfo,
	}

	query := r.repository.GoquDBWrapper.Insert("locations").
		Rows(goqu.Record{
			"name":         location.Name,
			"type":         location.Type,
			"parent_id":    location.ParentID,
			"address":      location.Address,
			"contact_info": location.ContactInfo,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&location.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("location", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert location record: %w", err)
	}

	return &location, nil
}

func (r *LocationRepository) UpdateLocation(id int, req models.LocationRequest) (*models.Location, error) {
	query := r.repository.GoquDBWrapper.
		Update("locations").
		Set(goqu.Record{
			"name":         req.Name,
			"type":         req.Type,
			"parent_id":    req.ParentID,
			"address":      req.Address,
			"contact_info": req.ContactInfo,
		}).
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("location", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, nil
	}

	return r.GetLocation(id)
}

func (r *LocationRepository) DeleteLocation(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("locations").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("location", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete location: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no location found with id: %d", id)
	}

	return nil
}

// HasChildren reports whether any location points at id as its parent.
func (r *LocationRepository) HasChildren(id int) (bool, error) {
	count, err := r.repository.GoquDBWrapper.
		From("locations").
		Where(goqu.Ex{"parent_id": id}).
		Count()
	if err != nil {
		return false, fmt.Errorf("unable to check location children: %w", err)
	}

	return count > 0, nil
}

func (r *LocationRepository) locationQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select("id", "name", "type", "parent_id", "address", "contact_info").
		From("locations")
}
