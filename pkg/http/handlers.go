package http

import (
	"net/http"
	"strconv"
	"time"

	"caremonitor.io/vital-alert-service/pkg/models"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

type PatientRequest struct {
	Name string `json:"name"`
}

var patientRequestSchema = z.Struct(z.Shape{
	"Name": z.String().Required(),
})

func (rs *RestfulServer) CreatePatient(c *gin.Context) {
	var req PatientRequest
	if err := patientRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	patient := models.Patient{Name: req.Name}
	if err := rs.Vitals.Db.Conn.Create(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, patient)
}

func (rs *RestfulServer) GetPatient(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patient_id")
	if !ok {
		return
	}

	var patient models.Patient
	if err := rs.Vitals.Db.Conn.First(&patient, patientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}

	c.JSON(http.StatusOK, patient)
}

type OverridesRequest struct {
	Overrides map[models.ParameterType]models.ThresholdOverride `json:"overrides"`
}

func (rs *RestfulServer) UpdateOverrides(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patient_id")
	if !ok {
		return
	}

	var req OverridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var patient models.Patient
	if err := rs.Vitals.Db.Conn.First(&patient, patientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}

	patient.ThresholdOverrides = req.Overrides
	if err := rs.Vitals.Db.Conn.Save(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.Status(http.StatusOK)
}

type MeasurementRequest struct {
	Timestamp   time.Time `json:"timestamp"`
	HeartRate   *float64  `json:"heart_rate"`
	SpO2        *float64  `json:"spo2"`
	SystolicBP  *float64  `json:"blood_pressure_systolic"`
	DiastolicBP *float64  `json:"blood_pressure_diastolic"`
	Temperature *float64  `json:"temperature"`
}

var measurementRequestSchema = z.Struct(z.Shape{
	"Timestamp":   z.Time().Required(),
	"HeartRate":   z.Ptr(z.Float64()),
	"SpO2":        z.Ptr(z.Float64()),
	"SystolicBP":  z.Ptr(z.Float64()),
	"DiastolicBP": z.Ptr(z.Float64()),
	"Temperature": z.Ptr(z.Float64()),
})

func (rs *RestfulServer) PostMeasurement(c *gin.Context) {
	patientIDRaw := c.Param("patient_id")

	if !rs.CheckPatientLimiter(patientIDRaw) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	patientID, ok := parseIDParam(c, "patient_id")
	if !ok {
		return
	}

	var req MeasurementRequest
	if err := measurementRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	measurement := models.Measurement{
		PatientID:   patientID,
		Timestamp:   req.Timestamp,
		HeartRate:   req.HeartRate,
		SpO2:        req.SpO2,
		SystolicBP:  req.SystolicBP,
		DiastolicBP: req.DiastolicBP,
		Temperature: req.Temperature,
	}
	if err := rs.Vitals.Db.Conn.Create(&measurement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	result, err := rs.Vitals.Evaluate.EvaluateMeasurement(&measurement)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"has_alerts":      result.HasAlerts,
		"alerts":          result.Alerts,
		"evaluated_count": result.EvaluatedCount,
	})
}

type ThresholdRequest struct {
	PatientID   *int     `json:"patient_id"`
	Parameter   string   `json:"parameter"`
	MinWarning  *float64 `json:"min_warning"`
	MaxWarning  *float64 `json:"max_warning"`
	MinCritical *float64 `json:"min_critical"`
	MaxCritical *float64 `json:"max_critical"`
	Enabled     bool     `json:"enabled"`
	Priority    int      `json:"priority"`
}

var thresholdRequestSchema = z.Struct(z.Shape{
	"PatientID":   z.Ptr(z.Int()),
	"Parameter":   z.String().Required(),
	"MinWarning":  z.Ptr(z.Float64()),
	"MaxWarning":  z.Ptr(z.Float64()),
	"MinCritical": z.Ptr(z.Float64()),
	"MaxCritical": z.Ptr(z.Float64()),
	"Enabled":     z.Bool(),
	"Priority":    z.Int(),
})

func (rs *RestfulServer) UpsertThreshold(c *gin.Context) {
	var req ThresholdRequest
	if err := thresholdRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	var patientID *uint
	if req.PatientID != nil {
		id := uint(*req.PatientID)
		patientID = &id
	}

	rule := models.ThresholdConfig{
		PatientID:   patientID,
		Parameter:   models.ParameterType(req.Parameter),
		MinWarning:  req.MinWarning,
		MaxWarning:  req.MaxWarning,
		MinCritical: req.MinCritical,
		MaxCritical: req.MaxCritical,
		Enabled:     req.Enabled,
		Priority:    req.Priority,
	}

	if err := rs.Vitals.Threshold.UpsertRule(&rule); err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, rule)
}

func (rs *RestfulServer) GetResolvedThresholds(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patient_id")
	if !ok {
		return
	}

	resolved, err := rs.Vitals.Threshold.ResolveThresholds(patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, resolved)
}

func (rs *RestfulServer) GetPatientAlerts(c *gin.Context) {
	patientIDRaw := c.Param("patient_id")

	if !rs.CheckPatientLimiter(patientIDRaw) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	patientID, ok := parseIDParam(c, "patient_id")
	if !ok {
		return
	}

	alerts, err := rs.Vitals.Alert.GetActiveAlertsForPatient(patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (rs *RestfulServer) GetAllActiveAlerts(c *gin.Context) {
	alerts, err := rs.Vitals.Alert.GetAllActiveAlerts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (rs *RestfulServer) GetAlertCounts(c *gin.Context) {
	counts, err := rs.Vitals.Alert.GetAlertCountsBySeverity()
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

type AlertStatusRequest struct {
	Status  string  `json:"status"`
	ActorID *string `json:"actor_id"`
	Notes   *string `json:"notes"`
}

var alertStatusRequestSchema = z.Struct(z.Shape{
	"Status":  z.String().Required(),
	"ActorID": z.Ptr(z.String()),
	"Notes":   z.Ptr(z.String()),
})

func (rs *RestfulServer) UpdateAlertStatus(c *gin.Context) {
	alertID, ok := parseIDParam(c, "alert_id")
	if !ok {
		return
	}

	var req AlertStatusRequest
	if err := alertStatusRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	err := rs.Vitals.Alert.UpdateAlertStatus(alertID, models.AlertStatus(req.Status), req.ActorID, req.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.Status(http.StatusOK)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	patientID := c.Param("patient_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(patientID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
