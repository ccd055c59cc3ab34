package models

// CellView is one cell as rendered by the frontend's overview cards.
type CellView struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Voltage    float64 `json:"voltage"`
	Current    float64 `json:"current"`
	Temp       float64 `json:"temp"`
	Capacity   float64 `json:"capacity"`
	MinVoltage float64 `json:"min_voltage"`
	MaxVoltage float64 `json:"max_voltage"`
}

// SessionResponse is returned by create/get/update session endpoints.
// Cells are in creation order.
type SessionResponse struct {
	SessionID string     `json:"session_id"`
	Cells     []CellView `json:"cells"`
}

// StatsResponse is the quick-stats block.
type StatsResponse struct {
	TotalCapacity float64        `json:"total_capacity"`
	AvgTemp       float64        `json:"avg_temp"`
	TotalCurrent  float64        `json:"total_current"`
	CellCount     int            `json:"cell_count"`
	CountsByType  map[string]int `json:"counts_by_type"`
}

// ChartsResponse bundles the chart-ready series for the analytics tab.
type ChartsResponse struct {
	Scatter       []ScatterPoint `json:"scatter"`
	TempHistogram []HistogramBin `json:"temp_histogram"`
	CapacityBars  []CapacityBar  `json:"capacity_bars"`
	TypeCounts    map[string]int `json:"type_counts"`
}

// ScatterPoint is one cell in the voltage-vs-current scatter.
type ScatterPoint struct {
	CellID   string  `json:"cell_id"`
	Type     string  `json:"type"`
	Voltage  float64 `json:"voltage"`
	Current  float64 `json:"current"`
	Capacity float64 `json:"capacity"`
	Temp     float64 `json:"temp"`
}

// HistogramBin is one temperature bucket with per-chemistry counts.
type HistogramBin struct {
	Low    float64        `json:"low"`
	High   float64        `json:"high"`
	Counts map[string]int `json:"counts"`
}

// CapacityBar is one bar of the capacity comparison chart.
type CapacityBar struct {
	CellID   string  `json:"cell_id"`
	Type     string  `json:"type"`
	Capacity float64 `json:"capacity"`
}

// ChemistryInfo describes one selectable chemistry for the configuration
// sidebar.
type ChemistryInfo struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	NominalVoltage float64 `json:"nominal_voltage"`
	MinVoltage     float64 `json:"min_voltage"`
	MaxVoltage     float64 `json:"max_voltage"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
