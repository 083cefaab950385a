package reports

import (
	"fmt"
	"time"

	"stockflow/internal/repository"
	"stockflow/pkg/metadata"

	"github.com/doug-martin/goqu/v9"
)

type CategoryUnits struct {
	Category string `db:"category" json:"category"`
	Units    int    `db:"units" json:"units"`
}

type ReportRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *ReportRepository {
	return &ReportRepository{repository: r}
}

func (r *ReportRepository) TotalUnits() (int, error) {
	var total *int
	query := r.repository.GoquDBWrapper.
		Select(goqu.SUM("current_stock").As("total")).
		From("items")

	if _, err := query.Executor().ScanVal(&total); err != nil {
		return 0, fmt.Errorf("unable to sum item stock: %w", err)
	}
	if total == nil {
		return 0, nil
	}

	return *total, nil
}

func (r *ReportRepository) CountItemsByStatus(status metadata.ItemStatus) (int, error) {
	count, err := r.repository.GoquDBWrapper.
		From("items").
		Where(goqu.Ex{"status": status.String()}).
		Count()
	if err != nil {
		return 0, fmt.Errorf("unable to count items by status: %w", err)
	}

	return int(count), nil
}

func (r *ReportRepository) CountOutboundMovementsSince(since time.Time) (int, error) {
	count, err := r.repository.GoquDBWrapper.
		From("movements").
		Where(goqu.Ex{"type": metadata.MovementOut.String()}).
		Where(goqu.I("created_at").Gte(since)).
		Count()
	if err != nil {
		return 0, fmt.Errorf("unable to count outbound movements: %w", err)
	}

	return int(count), nil
}

func (r *ReportRepository) UnitsPerCategory() ([]CategoryUnits, error) {
	var units []CategoryUnits
	query := r.repository.GoquDBWrapper.
		Select(goqu.I("category"), goqu.COALESCE(goqu.SUM("current_stock"), 0).As("units")).
		From("items").
		GroupBy("category").
		Order(goqu.I("category").Asc())

	if err := query.Executor().ScanStructs(&units); err != nil {
		return nil, fmt.Errorf("unable to sum units per category: %w", err)
	}

	return units, nil
}
