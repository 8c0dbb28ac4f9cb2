package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"getaround-api/models"
	"getaround-api/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PredictionKey is the single field of a /predict response.
const PredictionKey = "The return predicted price is"

var (
	predictionsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "getaround_predictions_served_total",
		Help: "Total number of prices returned by /predict.",
	}, []string{"source"})
	predictionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "getaround_predictions_rejected_total",
		Help: "Total number of /predict bodies rejected with 422.",
	})
	predictionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "getaround_predictions_failed_total",
		Help: "Total number of model failures.",
	})
	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "getaround_prediction_duration_seconds",
		Help:    "Duration of a model evaluation.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})
)

// Predictor scores one car.
type Predictor interface {
	Predict(models.CarFeatures) (float64, error)
}

// PredictRequest mirrors models.CarFeatures with every field required.
// Pointers tell a missing field from a zero value.
type PredictRequest struct {
	ModelKey                *string  `json:"model_key" binding:"required,notblank"`
	Mileage                 *float64 `json:"mileage" binding:"required"`
	EnginePower             *float64 `json:"engine_power" binding:"required"`
	Fuel                    *string  `json:"fuel" binding:"required,notblank"`
	PaintColor              *string  `json:"paint_color" binding:"required,notblank"`
	CarType                 *string  `json:"car_type" binding:"required,notblank"`
	PrivateParkingAvailable *bool    `json:"private_parking_available" binding:"required"`
	HasGPS                  *bool    `json:"has_gps" binding:"required"`
	HasAirConditioning      *bool    `json:"has_air_conditioning" binding:"required"`
	AutomaticCar            *bool    `json:"automatic_car" binding:"required"`
	HasGetaroundConnect     *bool    `json:"has_getaround_connect" binding:"required"`
	HasSpeedRegulator       *bool    `json:"has_speed_regulator" binding:"required"`
	WinterTires             *bool    `json:"winter_tires" binding:"required"`
}

// Features must only be called on a validated request.
func (r PredictRequest) Features() models.CarFeatures {
	return models.CarFeatures{
		ModelKey:                *r.ModelKey,
		Mileage:                 *r.Mileage,
		EnginePower:             *r.EnginePower,
		Fuel:                    *r.Fuel,
		PaintColor:              *r.PaintColor,
		CarType:                 *r.CarType,
		PrivateParkingAvailable: *r.PrivateParkingAvailable,
		HasGPS:                  *r.HasGPS,
		HasAirConditioning:      *r.HasAirConditioning,
		AutomaticCar:            *r.AutomaticCar,
		HasGetaroundConnect:     *r.HasGetaroundConnect,
		HasSpeedRegulator:       *r.HasSpeedRegulator,
		WinterTires:             *r.WinterTires,
	}
}

// PredictionEvent is published on services.PredictionsChannel.
type PredictionEvent struct {
	TS       time.Time          `json:"ts"`
	Features models.CarFeatures `json:"features"`
	Price    float64            `json:"price"`
}

type PredictHandler struct {
	model Predictor
	cache *services.CacheService
	ttl   time.Duration
}

func NewPredictHandler(model Predictor, cache *services.CacheService, ttl time.Duration) *PredictHandler {
	return &PredictHandler{model: model, cache: cache, ttl: ttl}
}

func (h *PredictHandler) Predict(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	log.Printf("Received request body: %s", body)

	var req PredictRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		predictionsRejected.Inc()
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": validationDetail(err)})
		return
	}
	features := req.Features()

	key, err := services.PredictionKey(features)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode features"})
		return
	}

	var cached float64
	if found, err := h.cache.Get(c.Request.Context(), key, &cached); err == nil && found {
		predictionsServed.WithLabelValues("cache").Inc()
		c.JSON(http.StatusOK, gin.H{PredictionKey: cached})
		return
	}

	start := time.Now()
	price, err := h.model.Predict(features)
	predictionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		predictionsFailed.Inc()
		log.Printf("prediction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}
	predictionsServed.WithLabelValues("model").Inc()

	go h.remember(key, features, price)

	c.JSON(http.StatusOK, gin.H{PredictionKey: price})
}

func (h *PredictHandler) remember(key string, features models.CarFeatures, price float64) {
	ctx := context.Background()
	if err := h.cache.Set(ctx, key, price, h.ttl); err != nil {
		log.Printf("cache set failed for %s: %v", key, err)
	}
	event := PredictionEvent{TS: time.Now().UTC(), Features: features, Price: price}
	if err := h.cache.Publish(ctx, services.PredictionsChannel, event); err != nil {
		log.Printf("redis publish failed: %v", err)
	}
}
