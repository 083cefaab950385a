package container

import (
	"database/sql"
	"os"

	auditLogRepo "stockflow/internal/auditlog"
	"stockflow/internal/comments"
	"stockflow/internal/integrations/assistant"
	"stockflow/internal/integrations/googlesheets"
	"stockflow/internal/inventory/items"
	"stockflow/internal/inventory/movements"
	"stockflow/internal/locations"
	"stockflow/internal/reports"
	"stockflow/internal/repository"
	"stockflow/internal/users"
	"stockflow/pkg/auditlog"
	"stockflow/pkg/models"
	"stockflow/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Repository       *repository.Repository
	AuditLog         *auditlog.Auditlog
	LoginHandler     *security.LoginHandler
	ItemHandler      *items.ItemHandler
	MovementHandler  *movements.MovementHandler
	LocationHandler  *locations.LocationHandler
	CommentHandler   *comments.CommentHandler
	UserHandler      *users.UserHandler
	ReportHandler    *reports.ReportHandler
	AssistantHandler *assistant.Handler

	// Nil when Google Sheets credentials are not configured.
	SheetsHandler *googlesheets.SnapshotHandler
}

func NewAppContainer(db *sql.DB, log *zap.Logger) (*Container, error) {
	repo := repository.NewRepository(db)

	auditRepo := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(auditRepo, log)

	itemRepo := items.NewRepository(repo)
	movementRepo := movements.NewRepository(repo)
	movementService := movements.NewService(repo, movementRepo, itemRepo)

	assistantService, err := assistant.NewService(os.Getenv("GEMINI_API_KEY"), &inventorySnapshot{
		items:     itemRepo,
		movements: movementService,
	}, log)
	if err != nil {
		return nil, err
	}

	container := &Container{
		Repository:       repo,
		AuditLog:         auditLog,
		LoginHandler:     security.NewLoginHandler(repo),
		ItemHandler:      items.NewItemHandler(itemRepo, auditRepo, auditLog),
		MovementHandler:  movements.NewMovementHandler(movementService, auditLog),
		LocationHandler:  locations.NewLocationHandler(locations.NewRepository(repo), auditLog),
		CommentHandler:   comments.NewCommentHandler(comments.NewRepository(repo)),
		UserHandler:      users.NewUserHandler(users.NewRepository(repo)),
		ReportHandler:    reports.NewReportHandler(reports.NewRepository(repo)),
		AssistantHandler: assistant.NewHandler(assistantService),
	}

	if os.Getenv("GOOGLE_SHEETS_CREDENTIALS_JSON") != "" {
		sheetsService, err := googlesheets.NewSnapshotService(itemRepo, log)
		if err != nil {
			log.Warn("Google Sheets integration disabled", zap.Error(err))
		} else {
			container.SheetsHandler = googlesheets.NewSnapshotHandler(sheetsService)
		}
	}

	return container, nil
}

// inventorySnapshot adapts the item repository and movement service to the
// assistant's read-only view of the inventory.
type inventorySnapshot struct {
	items     *items.ItemRepository
	movements movements.MovementService
}

func (s *inventorySnapshot) GetItems() (*[]models.Item, error) {
	return s.items.GetItems()
}

func (s *inventorySnapshot) GetMovements(itemID *int, limit int) (*[]models.Movement, error) {
	return s.movements.GetMovements(itemID, limit)
}
