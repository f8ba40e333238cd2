package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"caremonitor.io/vital-alert-service/pkg/vitals"
)

type RestfulServer struct {
	Server           *gin.Engine
	Vitals           *vitals.Vitals
	RateLimiterStore *vitals.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(patientID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(patientID)
	}
}

func (rs *RestfulServer) CheckPatientLimiter(patientID string) bool {
	limiter := rs.GetLimiter(patientID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(patientID string, patientRate float64, patientBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(patientID, rate.Limit(patientRate), patientBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rs.Server.POST("/patients", rs.CreatePatient)

	patients := rs.Server.Group("/patients/:patient_id")
	{
		patients.GET("", rs.GetPatient)
		patients.POST("/overrides", rs.UpdateOverrides)
		patients.POST("/measurements", rs.PostMeasurement)
		patients.GET("/thresholds", rs.GetResolvedThresholds)
		patients.GET("/alerts", rs.GetPatientAlerts)
		patients.POST("/limiter", rs.PostLimiter)
	}

	rs.Server.POST("/thresholds", rs.UpsertThreshold)

	alerts := rs.Server.Group("/alerts")
	{
		alerts.GET("/active", rs.GetAllActiveAlerts)
		alerts.GET("/counts", rs.GetAlertCounts)
		alerts.POST("/:alert_id/status", rs.UpdateAlertStatus)
	}
}
