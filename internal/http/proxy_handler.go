package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProxyHandler reenvía imágenes de terceros para evitar las restricciones
// CORS del navegador. No transforma nada: bytes y content-type tal cual.
type ProxyHandler struct {
	logger *zap.Logger
	client *http.Client
}

// NewProxyHandler crea un ProxyHandler. httpClient puede ser nil.
func NewProxyHandler(logger *zap.Logger, httpClient *http.Client) *ProxyHandler {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &ProxyHandler{logger: logger, client: httpClient}
}

// Image maneja GET /proxy?url=...
func (h *ProxyHandler) Image(c *gin.Context) {
	imageURL := c.Query("url")
	if imageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image URL is required"})
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, imageURL, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to proxy image: " + err.Error()})
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Error("image proxy fetch failed", zap.String("url", imageURL), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to proxy image: " + err.Error()})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		h.logger.Error("image proxy upstream error",
			zap.String("url", imageURL),
			zap.Int("status", resp.StatusCode),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed to proxy image: failed to fetch image: %s", resp.Status),
		})
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, resp.ContentLength, contentType, resp.Body, nil)
}
