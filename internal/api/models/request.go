package models

// CreateSessionRequest represents the body for POST /api/v1/sessions.
// One chemistry per desired cell, in display order ("lfp" or "nmc",
// case-insensitive).
type CreateSessionRequest struct {
	Chemistries []string `json:"chemistries" binding:"required"`
}

// SetCurrentRequest carries a single cell's new current in amperes.
// A pointer so binding can tell 0.0 apart from a missing field.
type SetCurrentRequest struct {
	Current *float64 `json:"current" binding:"required"`
}

// BatchCurrentsRequest is the "Update All Currents" body: cell id -> amperes.
// The whole batch commits atomically or not at all.
type BatchCurrentsRequest struct {
	Currents map[string]float64 `json:"currents" binding:"required"`
}
