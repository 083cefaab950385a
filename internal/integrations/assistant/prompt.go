package assistant

import (
	"encoding/json"
	"fmt"

	"stockflow/pkg/models"
)

const recentMovementLimit = 20

// Compact projections keep the prompt small; full rows waste tokens on
// fields the model never needs.
type promptItem struct {
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	Min      int    `json:"min"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

type promptMovement struct {
	Type string  `json:"type"`
	Qty  int     `json:"qty"`
	Date string  `json:"date"`
	Note *string `json:"note,omitempty"`
}

func buildAnalysisPrompt(query string, items []models.Item, movements []models.Movement) (string, error) {
	inventorySummary := make([]promptItem, 0, len(items))
	for _, item := range items {
		inventorySummary = append(inventorySummary, promptItem{
			Name:     item.Name,
			Stock:    item.CurrentStock,
			Min:      item.MinStockThreshold,
			Status:   item.Status.String(),
			Category: item.Category,
		})
	}

	if len(movements) > recentMovementLimit {
		movements = movements[:recentMovementLimit]
	}
	recentActivity := make([]promptMovement, 0, len(movements))
	for _, movement := range movements {
		recentActivity = append(recentActivity, promptMovement{
			Type: movement.Type.String(),
			Qty:  movement.Quantity,
			Date: movement.CreatedAt.Format("2006-01-02"),
			Note: movement.Note,
		})
	}

	inventoryJSON, err := json.Marshal(inventorySummary)
	if err != nil {
		return "", fmt.Errorf("failed to encode inventory summary: %w", err)
	}
	activityJSON, err := json.Marshal(recentActivity)
	if err != nil {
		return "", fmt.Errorf("failed to encode recent activity: %w", err)
	}

	prompt := fmt.Sprintf(`You are an expert Inventory Manager Assistant for an audiovisual equipment rental company.

Current Inventory Status (JSON):
%s

Recent Movements (Last %d):
%s

User Query: %q

Analyze the data above to answer the user's query.
- If asking about low stock, identify items where stock < min.
- If asking about trends, look at recent movements.
- Be concise, professional, and actionable.
- Format your response in Markdown.`,
		inventoryJSON, recentMovementLimit, activityJSON, query)

	return prompt, nil
}
