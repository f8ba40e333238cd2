package vitals

import (
	"time"

	"go.uber.org/zap"

	"caremonitor.io/vital-alert-service/pkg/common"
	"caremonitor.io/vital-alert-service/pkg/models"
)

// FalsePositiveDefaultNote is stamped on false-positive resolutions when the
// actor supplies no notes.
const FalsePositiveDefaultNote = "Reviewed by staff and marked as a false positive"

// activeStatuses are the statuses that count for deduplication and for the
// active-alert views. Escalated alerts are still open, just louder.
var activeStatuses = []models.AlertStatus{
	models.AlertStatusActive,
	models.AlertStatusEscalated,
}

func (v *Vitals) createAlert(alert *models.Alert) error {
	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAlertStore),
	)

	alert.Status = models.AlertStatusActive
	alert.EscalationLevel = 0

	if err := v.Db.Conn.Create(alert).Error; err != nil {
		return err
	}

	logger.Info("Alert created", zap.Reflect("alert", alert))
	return nil
}

func (v *Vitals) hasRecentActiveAlert(patientID uint, parameter models.ParameterType, window time.Duration) (bool, error) {
	cutoff := time.Now().Add(-window)

	var count int64
	err := v.Db.Conn.Model(&models.Alert{}).
		Where("patient_id = ? AND parameter = ? AND status IN ? AND created_at > ?",
			patientID, parameter, activeStatuses, cutoff).
		Count(&count).Error
	return count > 0, err
}

// updateAlertStatus applies a status transition. Transitions are not
// validated against the lifecycle: re-resolving a resolved alert is accepted
// and overwrites the resolution fields, so staff can always correct a
// mistake.
func (v *Vitals) updateAlertStatus(alertID uint, status models.AlertStatus, actorID *string, notes *string) error {
	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAlertStore),
	)

	var alert models.Alert
	if err := v.Db.Conn.First(&alert, alertID).Error; err != nil {
		return err
	}

	now := time.Now()

	switch status {
	case models.AlertStatusAcknowledged:
		alert.AcknowledgedAt = &now
		alert.AcknowledgedBy = actorID
	case models.AlertStatusResolved:
		alert.ResolvedAt = &now
		alert.ResolvedBy = actorID
		alert.ResolutionNotes = notes
	case models.AlertStatusFalsePositive:
		alert.ResolvedAt = &now
		alert.ResolvedBy = actorID
		if notes == nil {
			defaultNote := FalsePositiveDefaultNote
			notes = &defaultNote
		}
		alert.ResolutionNotes = notes
	case models.AlertStatusEscalated:
		alert.EscalationLevel++
	}

	alert.Status = status

	if err := v.Db.Conn.Save(&alert).Error; err != nil {
		return err
	}

	logger.Info("Alert status updated",
		zap.Uint("alert_id", alertID),
		zap.String("status", string(status)),
	)
	return nil
}

func (v *Vitals) getActiveAlertsForPatient(patientID uint) ([]models.Alert, error) {
	var alerts []models.Alert
	err := v.Db.Conn.
		Where("patient_id = ? AND status IN ?", patientID, activeStatuses).
		Order("created_at desc").
		Find(&alerts).Error
	return alerts, err
}

func (v *Vitals) getAllActiveAlerts() ([]models.Alert, error) {
	var alerts []models.Alert
	err := v.Db.Conn.
		Where("status IN ?", activeStatuses).
		Order("created_at desc").
		Find(&alerts).Error
	return alerts, err
}

func (v *Vitals) getAlertCountsBySeverity() (map[models.Severity]int64, error) {
	type severityCount struct {
		Severity models.Severity
		Count    int64
	}

	var rows []severityCount
	err := v.Db.Conn.Model(&models.Alert{}).
		Select("severity, count(*) as count").
		Where("status IN ?", activeStatuses).
		Group("severity").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return common.Reducer(rows, func(acc map[models.Severity]int64, row severityCount) map[models.Severity]int64 {
		acc[row.Severity] = row.Count
		return acc
	}, map[models.Severity]int64{}), nil
}

type IAlertImpl struct {
	vitals *Vitals
}

func (ia *IAlertImpl) CreateAlert(alert *models.Alert) error {
	return ia.vitals.createAlert(alert)
}

func (ia *IAlertImpl) HasRecentActiveAlert(patientID uint, parameter models.ParameterType, window time.Duration) (bool, error) {
	return ia.vitals.hasRecentActiveAlert(patientID, parameter, window)
}

func (ia *IAlertImpl) UpdateAlertStatus(alertID uint, status models.AlertStatus, actorID *string, notes *string) error {
	return ia.vitals.updateAlertStatus(alertID, status, actorID, notes)
}

func (ia *IAlertImpl) GetActiveAlertsForPatient(patientID uint) ([]models.Alert, error) {
	return ia.vitals.getActiveAlertsForPatient(patientID)
}

func (ia *IAlertImpl) GetAllActiveAlerts() ([]models.Alert, error) {
	return ia.vitals.getAllActiveAlerts()
}

func (ia *IAlertImpl) GetAlertCountsBySeverity() (map[models.Severity]int64, error) {
	return ia.vitals.getAlertCountsBySeverity()
}

func (v *Vitals) GetIAlert() IAlert {
	return &IAlertImpl{vitals: v}
}
