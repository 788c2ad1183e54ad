package dto

import (
	"encoding/json"
	"time"
)

// CategoryRequest is the create/update payload.
type CategoryRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	StageTemplate json.RawMessage `json:"stage_template"`
}

// CategoryResponse represents a category.
type CategoryResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	StageTemplate json.RawMessage `json:"stage_template,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
