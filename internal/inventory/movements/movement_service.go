package movements

import (
	"errors"
	"fmt"

	"stockflow/internal/inventory/ledger"
	"stockflow/internal/repository"
	"stockflow/pkg/metadata"
	"stockflow/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var (
	ErrItemNotFound        = errors.New("item not found")
	ErrLocationNotFound    = errors.New("location not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidMovementType = errors.New("invalid movement type")
)

// ItemLedgerStore is the slice of the items repository the recorder needs:
// a locked read and a derived-state write, both inside the caller's tx.
type ItemLedgerStore interface {
	GetItemForUpdate(tx *goqu.TxDatabase, id int) (*models.Item, error)
	UpdateDerivedState(tx *goqu.TxDatabase, itemID int, stock int, status metadata.ItemStatus) error
}

type MovementService interface {
	RecordMovement(req models.MovementRequest) (*models.Movement, error)
	GetMovements(itemID *int, limit int) (*[]models.Movement, error)
	GetMovement(id int) (*models.Movement, error)
}

type movementService struct {
	movements MovementRepository
	items     ItemLedgerStore
	runTx     func(fn func(tx *goqu.TxDatabase) error) error
}

func NewService(r *repository.Repository, movementRepo MovementRepository, itemStore ItemLedgerStore) MovementService {
	return &movementService{
		movements: movementRepo,
		items:     itemStore,
		runTx: func(fn func(tx *goqu.TxDatabase) error) error {
			return repository.WithTransaction(r.GoquDBWrapper, fn)
		},
	}
}

// RecordMovement atomically appends a movement and refreshes the item's stock
// and status. The item row is locked for the duration of the transaction, so
// two concurrent movements against the same item cannot both read the same
// starting stock.
func (s *movementService) RecordMovement(req models.MovementRequest) (*models.Movement, error) {
	movementType, err := metadata.NewMovementType(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMovementType, req.Type)
	}
	req.Type = movementType.String()

	if err := s.validateLocations(movementType, req.FromLocationID, req.ToLocationID); err != nil {
		return nil, err
	}

	var movementID int
	err = s.runTx(func(tx *goqu.TxDatabase) error {
		item, err := s.items.GetItemForUpdate(tx, req.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: id %d", ErrItemNotFound, req.ItemID)
		}

		if movementType == metadata.MovementOut && req.Quantity > item.CurrentStock {
			return fmt.Errorf("%w: item %d holds %d, movement requires %d",
				ErrInsufficientStock, item.ID, item.CurrentStock, req.Quantity)
		}

		newStock, newStatus := ledger.Reduce(item.CurrentStock, movementType, req.Quantity, item.MinStockThreshold)

		movementID, err = s.movements.InsertMovementRecord(tx, req)
		if err != nil {
			return err
		}

		return s.items.UpdateDerivedState(tx, item.ID, newStock, newStatus)
	})
	if err != nil {
		return nil, err
	}

	return s.movements.GetMovement(movementID)
}

func (s *movementService) GetMovements(itemID *int, limit int) (*[]models.Movement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.movements.GetMovements(itemID, limit)
}

func (s *movementService) GetMovement(id int) (*models.Movement, error) {
	return s.movements.GetMovement(id)
}

func (s *movementService) validateLocations(movementType metadata.MovementType, fromID, toID *int) error {
	switch movementType {
	case metadata.MovementIn:
		if toID == nil {
			return fmt.Errorf("%w: IN movement requires to_location_id", ErrInvalidMovementType)
		}
	case metadata.MovementOut:
		if fromID == nil {
			return fmt.Errorf("%w: OUT movement requires from_location_id", ErrInvalidMovementType)
		}
	case metadata.MovementTransfer:
		if fromID == nil || toID == nil {
			return fmt.Errorf("%w: TRANSFER movement requires from_location_id and to_location_id", ErrInvalidMovementType)
		}
	}

	for _, id := range []*int{fromID, toID} {
		if id == nil {
			continue
		}
		exists, err := s.movements.LocationExists(*id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: id %d", ErrLocationNotFound, *id)
		}
	}

	return nil
}
