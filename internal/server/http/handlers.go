package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cretelab/strengthserve/internal/classifier"
	"github.com/cretelab/strengthserve/internal/errors"
	"github.com/cretelab/strengthserve/internal/features"
	"github.com/cretelab/strengthserve/internal/handler/strength"
	"github.com/cretelab/strengthserve/internal/schema"
)

const trackingIDHeader = "X-Tracking-ID"

// Global feature importances of the trained ensemble, exported from the
// training notebook alongside the model artifact.
var featureImportances = map[string]float64{
	schema.FieldCement:                   0.24,
	schema.FieldWater:                    0.19,
	schema.FieldAge:                      0.15,
	features.FeatureWaterBinderRatio:     0.12,
	schema.FieldSuperplasticizer:         0.10,
	schema.FieldFlyAsh:                   0.08,
	schema.FieldBlastFurnaceSlag:         0.05,
	features.FeatureTotalBinder:          0.03,
	features.FeatureAggregateCementRatio: 0.02,
	schema.FieldCoarseAggregate:          0.01,
	schema.FieldFineAggregate:            0.01,
}

// RegisterRoutes registers the prediction API routes
func RegisterRoutes(router *gin.Engine, handler *strength.Handler) {
	api := router.Group("/api/v1")
	{
		api.POST("/predict", handlePredict(handler))
		api.POST("/predict/explain", handleExplain(handler))
		api.GET("/metadata", handleMetadata(handler))
	}
}

// handleError maps pipeline error kinds to HTTP responses
func handleError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *errors.ValidationError:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error(), "field": e.Field})
	case *errors.DegenerateMixError:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
	case *errors.ModelUnavailableError:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": e.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
	}
}

// handlePredict handles POST /api/v1/predict
func handlePredict(handler *strength.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw map[string]interface{}
		if err := c.ShouldBindJSON(&raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		result, err := handler.PredictStrength(raw, c.GetHeader(trackingIDHeader))
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// handleExplain handles POST /api/v1/predict/explain. It runs the same
// pipeline as /predict and attaches the model's global feature importances.
func handleExplain(handler *strength.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw map[string]interface{}
		if err := c.ShouldBindJSON(&raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		result, err := handler.PredictStrength(raw, c.GetHeader(trackingIDHeader))
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"prediction":         result,
			"feature_importance": featureImportances,
			"message":            "Global feature importance of the trained ensemble",
		})
	}
}

// handleMetadata handles GET /api/v1/metadata
func handleMetadata(handler *strength.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"model_type":    "GradientBoostedTrees",
			"model_version": handler.Predictor().Version(),
			"model_loaded":  handler.Predictor().IsReady(),
			"features_used": features.FeatureNames,
			"target":        "Concrete compressive strength (MPa, megapascals)",
			"performance_metrics": gin.H{
				"r2_score": 0.89,
				"rmse":     4.23,
			},
			"strength_tiers":    classifier.Tiers(),
			"drifting_features": handler.DriftingFeatures(),
			"timestamp":         time.Now().UTC().Format(time.RFC3339),
		})
	}
}
