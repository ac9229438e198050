package dto

import "time"

// PutSettingRequest body for PUT /api/settings.
type PutSettingRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
	Group string `json:"group" validate:"required,oneof=general email tax monitoring scanner performance"`
}

// SettingResponse one key/value row.
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Group     string    `json:"group"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmailLogDTO one delivery log row.
type EmailLogDTO struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Recipient   string    `json:"recipient"`
	Subject     string    `json:"subject"`
	Status      string    `json:"status"`
	Attempts    int       `json:"attempts"`
	LastError   string    `json:"last_error,omitempty"`
	ReferenceID string    `json:"reference_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
