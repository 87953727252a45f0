package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportSender runs the business report on demand.
type ReportSender interface {
	SendReport(ctx context.Context) error
}

// ReportsHandler exposes manual report triggers.
type ReportsHandler struct {
	sender ReportSender
	logger *zap.Logger
}

// NewReportsHandler constructs the reports HTTP adapter.
func NewReportsHandler(sender ReportSender, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{sender: sender, logger: logger}
}

// Send builds and delivers the business report immediately.
func (h *ReportsHandler) Send(c *gin.Context) {
	if err := h.sender.SendReport(c.Request.Context()); err != nil {
		h.logger.Error("manual report failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send report"})
		return
	}
	c.Status(http.StatusAccepted)
}
