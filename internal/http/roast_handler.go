package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roastgram/internal/service"
)

// RoastHandler mantiene dependencias para el endpoint de roast.
type RoastHandler struct {
	logger *zap.Logger
	roasts *service.RoastService
}

// NewRoastHandler crea una instancia de RoastHandler.
func NewRoastHandler(logger *zap.Logger, roasts *service.RoastService) *RoastHandler {
	return &RoastHandler{logger: logger, roasts: roasts}
}

// Roast maneja POST /roast.
func (h *RoastHandler) Roast(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid roast request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username dibutuhkan"})
		return
	}

	result, err := h.roasts.Roast(c.Request.Context(), req.Username)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username dibutuhkan"})
		return
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Tidak ada data instagram yang ditemukan"})
		return
	case err != nil:
		h.logger.Error("roast request failed",
			zap.String("username", req.Username),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
