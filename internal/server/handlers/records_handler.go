package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/suraksha/internal/domain/models"
	"github.com/mamadbah2/suraksha/internal/service/records"
)

// RecordService is the record store surface exposed over HTTP.
type RecordService interface {
	List() []models.ServiceRecord
	Get(id string) (models.ServiceRecord, bool)
	Create(ctx context.Context, input models.RecordInput) models.ServiceRecord
	Update(ctx context.Context, id string, patch models.RecordPatch) error
	Delete(ctx context.Context, id string) error
	CurrentMonthStats(now time.Time) models.MonthlyStats
	StatsForMonth(month string) models.MonthlyStats
	MonthlyHistory() []models.MonthlyStats
	Search(query string) []models.ServiceRecord
}

// RecordsHandler serves the service record API.
type RecordsHandler struct {
	svc      RecordService
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewRecordsHandler constructs the records HTTP adapter. The current month is
// derived in loc.
func NewRecordsHandler(svc RecordService, loc *time.Location, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &RecordsHandler{svc: svc, location: loc, now: time.Now, logger: logger}
}

// List returns every record, or the search result when ?q= is given.
func (h *RecordsHandler) List(c *gin.Context) {
	if q, ok := c.GetQuery("q"); ok {
		c.JSON(http.StatusOK, h.svc.Search(q))
		return
	}
	c.JSON(http.StatusOK, h.svc.List())
}

// Get returns a single record.
func (h *RecordsHandler) Get(c *gin.Context) {
	record, ok := h.svc.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// Create validates the form payload and stores a new record.
func (h *RecordsHandler) Create(c *gin.Context) {
	var input models.RecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Debug("invalid record payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := h.svc.Create(c.Request.Context(), input)
	c.JSON(http.StatusCreated, record)
}

// Update applies a partial update.
func (h *RecordsHandler) Update(c *gin.Context) {
	var patch models.RecordPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Debug("invalid patch payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	id := c.Param("id")
	if err := h.svc.Update(c.Request.Context(), id, patch); err != nil {
		h.writeMutationError(c, id, err)
		return
	}
	record, _ := h.svc.Get(id)
	c.JSON(http.StatusOK, record)
}

// Delete removes a record.
func (h *RecordsHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.writeMutationError(c, id, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CurrentStats returns the rollup for the current month or ?month=YYYY-MM.
func (h *RecordsHandler) CurrentStats(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusOK, h.svc.CurrentMonthStats(h.now().In(h.location)))
		return
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be formatted as YYYY-MM"})
		return
	}
	c.JSON(http.StatusOK, h.svc.StatsForMonth(month))
}

// History returns one rollup per month that has records, newest first.
func (h *RecordsHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.MonthlyHistory())
}

func (h *RecordsHandler) writeMutationError(c *gin.Context, id string, err error) {
	if errors.Is(err, records.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found", "id": id})
		return
	}
	h.logger.Error("record mutation failed", zap.String("id", id), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to update record"})
}
