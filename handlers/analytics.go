package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"getaround-api/analytics"
	"getaround-api/export"
	"getaround-api/services"

	"github.com/gin-gonic/gin"
)

type EstimateResponse struct {
	Threshold float64 `json:"threshold"`
	Count     int     `json:"count"`
	Total     int     `json:"total"`
	Fraction  float64 `json:"fraction"`
	Percent   float64 `json:"percent"`
}

func newEstimateResponse(threshold float64, e analytics.Estimate) EstimateResponse {
	return EstimateResponse{
		Threshold: threshold,
		Count:     e.Count,
		Total:     e.Total,
		Fraction:  e.Fraction,
		Percent:   e.Percent(),
	}
}

type InventoryResponse struct {
	EstimateResponse
	Scope analytics.Scope `json:"scope"`
}

type RevenueResponse struct {
	Threshold   float64           `json:"threshold"`
	Revenue     analytics.Revenue `json:"revenue"`
	Loss        float64           `json:"loss"`
	LossPercent float64           `json:"loss_percent"`
	LateLoss    EstimateResponse  `json:"late_loss"`
}

type AnalyticsHandler struct {
	dataset *analytics.Dataset
	cache   *services.CacheService
	ttl     time.Duration
}

func NewAnalyticsHandler(dataset *analytics.Dataset, cache *services.CacheService, ttl time.Duration) *AnalyticsHandler {
	return &AnalyticsHandler{dataset: dataset, cache: cache, ttl: ttl}
}

func (h *AnalyticsHandler) GetFriction(c *gin.Context) {
	threshold, ok := thresholdParam(c)
	if !ok {
		return
	}
	est, err := h.dataset.Friction(threshold)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEstimateResponse(threshold, est))
}

func (h *AnalyticsHandler) GetInventory(c *gin.Context) {
	threshold, ok := thresholdParam(c)
	if !ok {
		return
	}
	scope, err := analytics.ParseScope(c.Query("scope"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	est, err := h.dataset.InventoryLoss(threshold, scope)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}
	c.JSON(http.StatusOK, InventoryResponse{
		EstimateResponse: newEstimateResponse(threshold, est),
		Scope:            scope,
	})
}

func (h *AnalyticsHandler) GetRevenue(c *gin.Context) {
	threshold, ok := thresholdParam(c)
	if !ok {
		return
	}
	rev, lateLoss, err := h.dataset.RevenueAt(threshold)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}
	c.JSON(http.StatusOK, RevenueResponse{
		Threshold:   threshold,
		Revenue:     rev,
		Loss:        rev.Loss(),
		LossPercent: rev.LossPercent(),
		LateLoss:    newEstimateResponse(threshold, lateLoss),
	})
}

func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	threshold, ok := thresholdParam(c)
	if !ok {
		return
	}
	report, err := h.Report(c.Request.Context(), threshold)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) ExportDashboard(c *gin.Context) {
	threshold, ok := thresholdParam(c)
	if !ok {
		return
	}
	report, err := h.Report(c.Request.Context(), threshold)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteReport(&buf, report); err != nil {
		log.Printf("export failed for threshold=%v: %v", threshold, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(threshold)))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// Report builds the dashboard report for threshold, going through the
// cache when Redis is available.
func (h *AnalyticsHandler) Report(ctx context.Context, threshold float64) (analytics.Report, error) {
	key := services.ReportKey(threshold)

	var cached analytics.Report
	if found, err := h.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	report, err := h.dataset.Report(threshold)
	if err != nil {
		return analytics.Report{}, err
	}
	go func() {
		if err := h.cache.Set(context.Background(), key, report, h.ttl); err != nil {
			log.Printf("cache set failed for %s: %v", key, err)
		}
	}()
	return report, nil
}

func thresholdParam(c *gin.Context) (float64, bool) {
	v, err := ParseThreshold(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, false
	}
	return v, true
}

func respondAnalyticsError(c *gin.Context, err error) {
	if errors.Is(err, analytics.ErrEmptySubset) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	log.Printf("analytics request %s failed: %v", c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "analytics computation failed"})
}
