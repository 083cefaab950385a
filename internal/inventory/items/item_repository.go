package items

import (
	"fmt"

	"stockflow/internal/repository"
	custom_error "stockflow/pkg/errors"
	"stockflow/pkg/metadata"
	"stockflow/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
)

type ItemRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *ItemRepository {
	return &ItemRepository{repository: r}
}

func (r *ItemRepository) GetItems() (*[]models.Item, error) {
	var items = []models.Item{}
	query := r.itemQuery().Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("unable to select items from database: %w", err)
	}

	return &items, nil
}

func (r *ItemRepository) GetItemsBy(filter *repository.Filter, search string) (*[]models.Item, error) {
	query := r.itemQuery().
		Where(filter.Conditions()).
		Order(goqu.I("id").Asc())

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(goqu.Or(
			goqu.I("name").ILike(pattern),
			goqu.I("category").ILike(pattern),
			goqu.L("EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE ?)", pattern),
		))
	}

	var items = []models.Item{}
	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("unable to select items from database: %w", err)
	}

	return &items, nil
}

func (r *ItemRepository) GetItem(id int) (*models.Item, error) {
	var item models.Item
	query := r.itemQuery().Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, fmt.Errorf("unable to select item from database: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &item, nil
}

func (r *ItemRepository) PersistItem(req models.ItemRequest) (*models.Item, error) {
	item := models.Item{
		Name:              req.Name,
		Brand:             req.Brand,
		Model:             req.Model,
		Category:          req.Category,
		MinStockThreshold: req.MinStockThreshold,
		Tags:              pq.StringArray(req.Tags),
		ImageURL:          req.ImageURL,
		Description:       req.Description,
		CurrentStock:      0,
		Status:            metadata.StatusUnavailable,
	}

	query := r.repository.GoquDBWrapper.Insert("items").
		Rows(goqu.Record{
			"name":                item.Name,
			"brand":               item.Brand,
			"model":               item.Model,
			"category":            item.Category,
			"min_stock_threshold": item.MinStockThreshold,
			"tags":                pq.Array(req.Tags),
			"image_url":           item.ImageURL,
			"description":         item.Description,
			"current_stock":       item.CurrentStock,
			"status":              item.Status.String(),
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&item.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("item", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert item record: %w", err)
	}

	return &item, nil
}

func (r *ItemRepository) UpdateItem(req *models.PatchItemRequest, status *metadata.ItemStatus) (*models.Item, error) {
	updates, err := buildUpdateFields(req, status)
	if err != nil {
		return nil, err
	}

	query := r.repository.GoquDBWrapper.
		Update("items").
		Set(updates).
		Where(goqu.Ex{"id": req.ID})

	result, err := query.Executor().Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, nil
	}

	return r.GetItem(req.ID)
}

func (r *ItemRepository) DeleteItem(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("items").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("item", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no item found with id: %d", id)
	}

	return nil
}

// GetItemForUpdate reads an item inside tx with a row lock, so concurrent
// movement recordings against the same item serialize on the item row.
func (r *ItemRepository) GetItemForUpdate(tx *goqu.TxDatabase, id int) (*models.Item, error) {
	var item models.Item
	query := tx.
		Select("id", "name", "min_stock_threshold", "current_stock", "status").
		From("items").
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait)

	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, fmt.Errorf("unable to lock item row: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &item, nil
}

// UpdateDerivedState writes the reducer's output back to the item row.
func (r *ItemRepository) UpdateDerivedState(tx *goqu.TxDatabase, itemID int, stock int, status metadata.ItemStatus) error {
	_, err := tx.
		Update("items").
		Set(goqu.Record{
			"current_stock": stock,
			"status":        status.String(),
		}).
		Where(goqu.Ex{"id": itemID}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update derived item state: %w", err)
	}

	return nil
}

func (r *ItemRepository) itemQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select(
			"id", "name", "brand", "model", "category",
			"min_stock_threshold", "tags", "image_url", "description",
			"current_stock", "status",
		).
		From("items")
}

func buildUpdateFields(req *models.PatchItemRequest, status *metadata.ItemStatus) (goqu.Record, error) {
	updates := goqu.Record{}

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.MinStockThreshold != nil {
		updates["min_stock_threshold"] = *req.MinStockThreshold
	}
	if req.Tags != nil {
		updates["tags"] = pq.Array(*req.Tags)
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if status != nil {
		updates["status"] = status.String()
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	return updates, nil
}
