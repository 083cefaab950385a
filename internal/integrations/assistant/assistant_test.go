package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"stockflow/pkg/metadata"
	"stockflow/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockSnapshotStore struct {
	mock.Mock
}

func (m *mockSnapshotStore) GetItems() (*[]models.Item, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*[]models.Item), args.Error(1)
}

func (m *mockSnapshotStore) GetMovements(itemID *int, limit int) (*[]models.Movement, error) {
	args := m.Called(itemID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*[]models.Movement), args.Error(1)
}

func TestAnalyzeInventoryWithoutAPIKeyReturnsFallback(t *testing.T) {
	store := new(mockSnapshotStore)
	service, err := NewService("", store, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, missingKeyMessage, service.AnalyzeInventory(context.Background(), "what is low on stock?"))
	store.AssertNotCalled(t, "GetItems")
}

func TestBuildAnalysisPromptEmbedsSnapshot(t *testing.T) {
	note := "returned damaged"
	items := []models.Item{
		{
			Name:              "Shure SM58",
			CurrentStock:      2,
			MinStockThreshold: 4,
			Status:            metadata.StatusLow,
			Category:          "audio",
		},
	}
	movements := []models.Movement{
		{
			Type:      metadata.MovementOut,
			Quantity:  3,
			Note:      &note,
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	prompt, err := buildAnalysisPrompt("which mics are low?", items, movements)

	assert.NoError(t, err)
	assert.Contains(t, prompt, `"name":"Shure SM58"`)
	assert.Contains(t, prompt, `"stock":2`)
	assert.Contains(t, prompt, `"min":4`)
	assert.Contains(t, prompt, `"type":"OUT"`)
	assert.Contains(t, prompt, `"date":"2025-06-01"`)
	assert.Contains(t, prompt, `"which mics are low?"`)
}

func TestBuildAnalysisPromptCapsMovementHistory(t *testing.T) {
	movements := make([]models.Movement, recentMovementLimit+10)
	for i := range movements {
		movements[i] = models.Movement{Type: metadata.MovementIn, Quantity: 1}
	}

	prompt, err := buildAnalysisPrompt("trends?", nil, movements)

	assert.NoError(t, err)
	assert.Equal(t, recentMovementLimit, strings.Count(prompt, `"type":"IN"`))
}
