package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"cell-dashboard/internal/analysis"
	"cell-dashboard/internal/api/models"
	"cell-dashboard/internal/model"
	"cell-dashboard/internal/session"
	"cell-dashboard/internal/sim"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CellsHandler serves the dashboard's session endpoints: generate cells,
// update currents, read stats/charts, export CSV.
type CellsHandler struct {
	factory  *sim.Factory
	store    *session.Store
	maxCells int
	bins     int
	log      zerolog.Logger
}

// NewCellsHandler creates a handler. maxCells may be below sim.MaxCells to
// restrict a deployment; bins controls the temperature histogram.
func NewCellsHandler(factory *sim.Factory, store *session.Store, maxCells, bins int, log zerolog.Logger) *CellsHandler {
	if maxCells <= 0 || maxCells > sim.MaxCells {
		maxCells = sim.MaxCells
	}
	return &CellsHandler{
		factory:  factory,
		store:    store,
		maxCells: maxCells,
		bins:     bins,
		log:      log,
	}
}

// CreateSession handles POST /api/v1/sessions.
func (h *CellsHandler) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	if len(req.Chemistries) > h.maxCells {
		badRequest(c, "INVALID_INPUT",
			fmt.Sprintf("%d cells requested, max is %d", len(req.Chemistries), h.maxCells))
		return
	}

	ledger, err := h.factory.CreateCells(req.Chemistries)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	id := h.store.Create(ledger)

	h.log.Info().Str("session_id", id).Int("cells", ledger.Len()).Msg("session created")
	c.JSON(http.StatusCreated, sessionResponse(id, ledger))
}

// GetSession handles GET /api/v1/sessions/:id.
func (h *CellsHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	ledger, err := h.store.Get(id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(id, ledger))
}

// SetCurrent handles PUT /api/v1/sessions/:id/cells/:cellId/current.
func (h *CellsHandler) SetCurrent(c *gin.Context) {
	var req models.SetCurrentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	id := c.Param("id")
	ledger, err := h.store.Get(id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if err := ledger.SetCurrent(c.Param("cellId"), *req.Current); err != nil {
		writeDomainError(c, err)
		return
	}
	if err := h.store.Replace(id, ledger); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(id, ledger))
}

// UpdateCurrents handles PUT /api/v1/sessions/:id/currents. All updates land
// together or not at all.
func (h *CellsHandler) UpdateCurrents(c *gin.Context) {
	var req models.BatchCurrentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	id := c.Param("id")
	ledger, err := h.store.Get(id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	candidate, err := ledger.ApplyCurrents(req.Currents)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if err := h.store.Replace(id, candidate); err != nil {
		writeDomainError(c, err)
		return
	}

	h.log.Info().Str("session_id", id).Int("updates", len(req.Currents)).Msg("currents updated")
	c.JSON(http.StatusOK, sessionResponse(id, candidate))
}

// GetStats handles GET /api/v1/sessions/:id/stats.
func (h *CellsHandler) GetStats(c *gin.Context) {
	ledger, err := h.store.Get(c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	summary, err := analysis.Summarize(ledger)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatsResponse{
		TotalCapacity: model.Round2(summary.TotalCapacity),
		AvgTemp:       model.Round1(summary.AvgTemp),
		TotalCurrent:  model.Round1(summary.TotalCurrent),
		CellCount:     summary.CellCount,
		CountsByType:  typeCounts(summary.CountsByType),
	})
}

// GetCharts handles GET /api/v1/sessions/:id/charts.
func (h *CellsHandler) GetCharts(c *gin.Context) {
	ledger, err := h.store.Get(c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	scatter := make([]models.ScatterPoint, 0, ledger.Len())
	for _, p := range analysis.ScatterSeries(ledger) {
		scatter = append(scatter, models.ScatterPoint{
			CellID:   p.CellID,
			Type:     string(p.Type),
			Voltage:  p.Voltage,
			Current:  p.Current,
			Capacity: p.Capacity,
			Temp:     p.Temp,
		})
	}

	hist := make([]models.HistogramBin, 0, h.bins)
	for _, b := range analysis.TemperatureHistogram(ledger, h.bins) {
		hist = append(hist, models.HistogramBin{
			Low:    b.Low,
			High:   b.High,
			Counts: typeCounts(b.Counts),
		})
	}

	bars := make([]models.CapacityBar, 0, ledger.Len())
	for _, b := range analysis.CapacityBars(ledger) {
		bars = append(bars, models.CapacityBar{
			CellID:   b.CellID,
			Type:     string(b.Type),
			Capacity: b.Capacity,
		})
	}

	c.JSON(http.StatusOK, models.ChartsResponse{
		Scatter:       scatter,
		TempHistogram: hist,
		CapacityBars:  bars,
		TypeCounts:    typeCounts(ledger.CountByChemistry()),
	})
}

// ExportCSV handles GET /api/v1/sessions/:id/export.csv.
func (h *CellsHandler) ExportCSV(c *gin.Context) {
	ledger, err := h.store.Get(c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := sim.WriteCSV(&buf, ledger); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "EXPORT_ERROR", Message: err.Error()},
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="battery_cell_data.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func sessionResponse(id string, ledger *sim.Ledger) models.SessionResponse {
	cells := make([]models.CellView, 0, ledger.Len())
	for _, e := range ledger.Entries() {
		cells = append(cells, models.CellView{
			ID:         e.ID,
			Type:       string(e.Cell.Type),
			Voltage:    e.Cell.Voltage,
			Current:    e.Cell.Current,
			Temp:       e.Cell.Temp,
			Capacity:   e.Cell.Capacity,
			MinVoltage: e.Cell.MinVoltage,
			MaxVoltage: e.Cell.MaxVoltage,
		})
	}
	return models.SessionResponse{SessionID: id, Cells: cells}
}

func typeCounts(counts map[model.Chemistry]int) map[string]int {
	out := make(map[string]int, len(counts))
	for chem, n := range counts {
		out[string(chem)] = n
	}
	return out
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: message},
	})
}

// writeDomainError maps core error kinds onto HTTP status codes and the
// standard envelope.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sim.ErrInvalidInput):
		badRequest(c, "INVALID_INPUT", err.Error())
	case errors.Is(err, sim.ErrOutOfRange):
		badRequest(c, "CURRENT_OUT_OF_RANGE", err.Error())
	case errors.Is(err, sim.ErrEmptyLedger):
		badRequest(c, "EMPTY_LEDGER", err.Error())
	case errors.Is(err, sim.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "CELL_NOT_FOUND", Message: err.Error()},
		})
	case errors.Is(err, session.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "SESSION_NOT_FOUND", Message: err.Error()},
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
		})
	}
}
