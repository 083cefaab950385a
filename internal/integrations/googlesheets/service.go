package googlesheets

import (
	"context"
	"fmt"
	"os"
	"time"

	"stockflow/pkg/models"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const snapshotRange = "A1:H"

type ItemLister interface {
	GetItems() (*[]models.Item, error)
}

// SnapshotService mirrors the current inventory into a Google spreadsheet so
// warehouse staff without system accounts can read stock levels.
type SnapshotService struct {
	sheetsService *sheets.Service
	spreadsheetID string
	items         ItemLister
	log           *zap.Logger
}

func NewSnapshotService(items ItemLister, log *zap.Logger) (*SnapshotService, error) {
	ctx := context.Background()

	credentialsJSON := os.Getenv("GOOGLE_SHEETS_CREDENTIALS_JSON")
	if credentialsJSON == "" {
		return nil, fmt.Errorf("GOOGLE_SHEETS_CREDENTIALS_JSON is not set")
	}
	spreadsheetID := os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	if spreadsheetID == "" {
		return nil, fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID is not set")
	}

	credentials, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON), sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to load Google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Sheets client: %w", err)
	}

	return &SnapshotService{
		sheetsService: sheetsService,
		spreadsheetID: spreadsheetID,
		items:         items,
		log:           log,
	}, nil
}

// PushSnapshot overwrites the snapshot range with the current item list.
func (s *SnapshotService) PushSnapshot() (int, error) {
	items, err := s.items.GetItems()
	if err != nil {
		return 0, fmt.Errorf("unable to load items for snapshot: %w", err)
	}

	values := buildSnapshotRows(*items)

	_, err = s.sheetsService.Spreadsheets.Values.
		Update(s.spreadsheetID, snapshotRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Do()
	if err != nil {
		return 0, fmt.Errorf("unable to write inventory snapshot: %w", err)
	}

	s.log.Info("Pushed inventory snapshot to Google Sheets",
		zap.Int("items", len(*items)),
		zap.String("spreadsheet_id", s.spreadsheetID),
	)

	return len(*items), nil
}

func buildSnapshotRows(items []models.Item) [][]interface{} {
	values := [][]interface{}{
		{"ID", "Name", "Brand", "Model", "Category", "Current Stock", "Min Threshold", "Status"},
	}
	for _, item := range items {
		values = append(values, []interface{}{
			item.ID,
			item.Name,
			item.Brand,
			item.Model,
			item.Category,
			item.CurrentStock,
			item.MinStockThreshold,
			item.Status.String(),
		})
	}
	values = append(values, []interface{}{
		"", "", "", "", "", "", "Generated", time.Now().Format(time.RFC3339),
	})

	return values
}
