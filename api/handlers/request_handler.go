package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/tg-vidbot/internal/domain"
	"go.uber.org/zap"
)

const defaultListLimit = 50

// RequestHandler exposes the request history over HTTP
type RequestHandler struct {
	repo   domain.RequestRepository
	logger *zap.Logger
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(repo domain.RequestRepository, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{
		repo:   repo,
		logger: logger,
	}
}

// ListRequests returns recent requests, optionally filtered by status
func (h *RequestHandler) ListRequests(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	var requests []*domain.Request
	var err error
	if status := c.Query("status"); status != "" {
		requests, err = h.repo.FindByStatus(domain.RequestStatus(status), limit)
	} else {
		requests, err = h.repo.FindRecent(limit)
	}
	if err != nil {
		h.logger.Error("Failed to list requests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GetRequest returns a single request by ID
func (h *RequestHandler) GetRequest(c *gin.Context) {
	request, err := h.repo.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}

	c.JSON(http.StatusOK, request)
}

// GetStats returns request statistics
func (h *RequestHandler) GetStats(c *gin.Context) {
	stats, err := h.repo.GetStats()
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
