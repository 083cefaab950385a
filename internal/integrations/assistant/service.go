package assistant

import (
	"context"
	"fmt"

	"stockflow/pkg/models"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	defaultModel = "gemini-1.5-flash"

	missingKeyMessage    = "API Key is missing. Please configure the environment variable."
	analysisErrorMessage = "Sorry, I encountered an error while analyzing your inventory."
	emptyAnalysisMessage = "I couldn't generate an analysis at this time."
)

type InventorySnapshotStore interface {
	GetItems() (*[]models.Item, error)
	GetMovements(itemID *int, limit int) (*[]models.Movement, error)
}

// Service wraps the Gemini client. A nil client is a valid state and means
// the assistant runs in degraded mode: every query answers with the
// missing-key message.
type Service struct {
	client *genai.Client
	store  InventorySnapshotStore
	log    *zap.Logger
}

func NewService(apiKey string, store InventorySnapshotStore, log *zap.Logger) (*Service, error) {
	if apiKey == "" {
		log.Warn("GEMINI_API_KEY not set, inventory assistant runs in degraded mode")
		return &Service{client: nil, store: store, log: log}, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Service{client: client, store: store, log: log}, nil
}

// AnalyzeInventory answers a free-text query against a snapshot of the
// inventory. It never returns an error to the caller: failures degrade to a
// fixed message so the endpoint stays usable without the integration.
func (s *Service) AnalyzeInventory(ctx context.Context, query string) string {
	if s.client == nil {
		return missingKeyMessage
	}

	items, err := s.store.GetItems()
	if err != nil {
		s.log.Error("assistant failed to load inventory snapshot", zap.Error(err))
		return analysisErrorMessage
	}

	movements, err := s.store.GetMovements(nil, recentMovementLimit)
	if err != nil {
		s.log.Error("assistant failed to load recent movements", zap.Error(err))
		return analysisErrorMessage
	}

	prompt, err := buildAnalysisPrompt(query, *items, *movements)
	if err != nil {
		s.log.Error("assistant failed to build prompt", zap.Error(err))
		return analysisErrorMessage
	}

	model := s.client.GenerativeModel(defaultModel)
	response, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		s.log.Error("Gemini API error", zap.Error(err))
		return analysisErrorMessage
	}

	text := extractText(response)
	if text == "" {
		return emptyAnalysisMessage
	}

	return text
}

func extractText(response *genai.GenerateContentResponse) string {
	if response == nil || len(response.Candidates) == 0 {
		return ""
	}
	candidate := response.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var text string
	for _, part := range candidate.Content.Parts {
		if fragment, ok := part.(genai.Text); ok {
			text += string(fragment)
		}
	}
	return text
}
