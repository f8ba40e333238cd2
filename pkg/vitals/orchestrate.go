package vitals

import (
	"time"

	"go.uber.org/zap"

	"caremonitor.io/vital-alert-service/pkg/common"
	"caremonitor.io/vital-alert-service/pkg/metrics"
	"caremonitor.io/vital-alert-service/pkg/models"
)

// evaluateMeasurement runs the per-parameter pipeline: resolve thresholds
// once, then classify, deduplicate, persist and enqueue dispatch for every
// parameter the measurement carries. Persistence errors propagate to the
// ingestion caller; dispatch runs on its own and never delays the return.
func (v *Vitals) evaluateMeasurement(m *models.Measurement) (*models.EvaluationResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryEvaluate),
	)

	start := time.Now()
	defer func() {
		metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	}()

	thresholds, err := v.Threshold.ResolveThresholds(m.PatientID)
	if err != nil {
		return nil, err
	}

	result := &models.EvaluationResult{}

	for _, parameter := range models.AllParameters {
		value := m.ParameterValue(parameter)
		if value == nil {
			continue
		}

		cfg, ok := thresholds[parameter]
		if !ok {
			// no rule for this parameter, nothing to evaluate
			continue
		}
		result.EvaluatedCount++

		classification := ClassifyValue(parameter, *value, &cfg)
		if classification == nil {
			continue
		}

		duplicate, err := v.Alert.HasRecentActiveAlert(m.PatientID, parameter, DedupWindow(classification.Severity))
		if err != nil {
			return nil, err
		}
		if duplicate {
			logger.Debug("Alert suppressed as duplicate",
				zap.Uint("patient_id", m.PatientID),
				zap.String("parameter", string(parameter)),
				zap.String("severity", string(classification.Severity)),
			)
			metrics.AlertsSuppressedTotal.
				WithLabelValues(string(parameter), string(classification.Severity)).
				Inc()
			continue
		}

		alert := models.Alert{
			PatientID:         m.PatientID,
			AlertType:         classification.AlertType,
			Severity:          classification.Severity,
			Parameter:         parameter,
			MeasuredValue:     *value,
			ThresholdExceeded: classification.Exceeded,
			Message:           classification.Message,
		}
		if m.ID != 0 {
			measurementID := m.ID
			alert.MeasurementID = &measurementID
		}

		if err := v.Alert.CreateAlert(&alert); err != nil {
			return nil, err
		}

		metrics.AlertsRaisedTotal.
			WithLabelValues(string(parameter), string(classification.Severity)).
			Inc()

		result.Alerts = append(result.Alerts, alert)
		result.HasAlerts = true

		if v.Dispatch != nil {
			v.Dispatch.EnqueueAlert(&alert)
		}
	}

	logger.Info("Measurement evaluated",
		zap.Uint("patient_id", m.PatientID),
		zap.Int("evaluated", result.EvaluatedCount),
		zap.Int("alerts", len(result.Alerts)),
	)
	return result, nil
}

type IEvaluateImpl struct {
	vitals *Vitals
}

func (ie *IEvaluateImpl) EvaluateMeasurement(m *models.Measurement) (*models.EvaluationResult, error) {
	return ie.vitals.evaluateMeasurement(m)
}

func (v *Vitals) GetIEvaluate() IEvaluate {
	return &IEvaluateImpl{vitals: v}
}
