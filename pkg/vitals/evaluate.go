package vitals

import (
	"fmt"
	"time"

	"caremonitor.io/vital-alert-service/pkg/models"
)

type Direction string

const (
	DirectionLow  Direction = "low"
	DirectionHigh Direction = "high"
)

// Deduplication windows. Critical conditions get the tighter window so they
// are allowed to re-alert sooner.
const (
	DedupWindowEmergency = 5 * time.Minute
	DedupWindowDefault   = 15 * time.Minute
)

type Classification struct {
	Severity  models.Severity
	Direction Direction
	Exceeded  float64
	AlertType string
	Message   string
}

// ClassifyValue compares a measured value against a resolved threshold.
// Critical bounds are checked before warning bounds, so a value breaching
// both yields the emergency classification. All comparisons are strict: a
// value exactly on a bound is in range. Returns nil when nothing is breached.
func ClassifyValue(parameter models.ParameterType, value float64, cfg *models.ThresholdConfig) *Classification {
	if cfg.MinCritical != nil && value < *cfg.MinCritical {
		return newClassification(parameter, value, models.SeverityEmergency, DirectionLow, *cfg.MinCritical)
	}
	if cfg.MaxCritical != nil && value > *cfg.MaxCritical {
		return newClassification(parameter, value, models.SeverityEmergency, DirectionHigh, *cfg.MaxCritical)
	}
	if cfg.MinWarning != nil && value < *cfg.MinWarning {
		return newClassification(parameter, value, models.SeverityWarning, DirectionLow, *cfg.MinWarning)
	}
	if cfg.MaxWarning != nil && value > *cfg.MaxWarning {
		return newClassification(parameter, value, models.SeverityWarning, DirectionHigh, *cfg.MaxWarning)
	}
	return nil
}

func DedupWindow(severity models.Severity) time.Duration {
	if severity == models.SeverityEmergency {
		return DedupWindowEmergency
	}
	return DedupWindowDefault
}

func newClassification(parameter models.ParameterType, value float64, severity models.Severity, direction Direction, exceeded float64) *Classification {
	return &Classification{
		Severity:  severity,
		Direction: direction,
		Exceeded:  exceeded,
		AlertType: alertTypeFor(parameter, severity, direction),
		Message:   alertMessageFor(parameter, value, severity, direction, exceeded),
	}
}

func severityBand(severity models.Severity) string {
	if severity == models.SeverityEmergency {
		return "critical"
	}
	return "warning"
}

func alertTypeFor(parameter models.ParameterType, severity models.Severity, direction Direction) string {
	return fmt.Sprintf("%s_%s_%s", parameter, direction, severityBand(severity))
}

func alertMessageFor(parameter models.ParameterType, value float64, severity models.Severity, direction Direction, exceeded float64) string {
	info := models.ParameterInfos[parameter]

	directionWord := "above"
	if direction == DirectionLow {
		directionWord = "below"
	}

	return fmt.Sprintf("%s %.1f %s is %s the %s limit of %.1f %s",
		info.Label, value, info.Unit, directionWord, severityBand(severity), exceeded, info.Unit)
}
