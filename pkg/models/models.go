package models

import "time"

type ParameterType string

const (
	ParameterHeartRate   ParameterType = "heart_rate"
	ParameterSpO2        ParameterType = "spo2"
	ParameterSystolicBP  ParameterType = "blood_pressure_systolic"
	ParameterDiastolicBP ParameterType = "blood_pressure_diastolic"
	ParameterTemperature ParameterType = "temperature"
)

// AllParameters is the evaluation order used by the orchestrator.
var AllParameters = []ParameterType{
	ParameterHeartRate,
	ParameterSpO2,
	ParameterSystolicBP,
	ParameterDiastolicBP,
	ParameterTemperature,
}

type ParameterInfo struct {
	Label string
	Unit  string
}

var ParameterInfos = map[ParameterType]ParameterInfo{
	ParameterHeartRate:   {Label: "Heart rate", Unit: "bpm"},
	ParameterSpO2:        {Label: "SpO2", Unit: "%"},
	ParameterSystolicBP:  {Label: "Systolic blood pressure", Unit: "mmHg"},
	ParameterDiastolicBP: {Label: "Diastolic blood pressure", Unit: "mmHg"},
	ParameterTemperature: {Label: "Body temperature", Unit: "°C"},
}

type Severity string

const (
	SeverityInfo      Severity = "info"
	SeverityWarning   Severity = "warning"
	SeverityAlarm     Severity = "alarm" // reserved, not produced by evaluation
	SeverityEmergency Severity = "emergency"
)

type AlertStatus string

const (
	AlertStatusActive        AlertStatus = "active"
	AlertStatusAcknowledged  AlertStatus = "acknowledged"
	AlertStatusResolved      AlertStatus = "resolved"
	AlertStatusFalsePositive AlertStatus = "false_positive"
	AlertStatusEscalated     AlertStatus = "escalated"
)

type NotificationStatus string

const (
	NotificationStatusPending      NotificationStatus = "pending"
	NotificationStatusSending      NotificationStatus = "sending"
	NotificationStatusSent         NotificationStatus = "sent"
	NotificationStatusDelivered    NotificationStatus = "delivered"
	NotificationStatusFailed       NotificationStatus = "failed"
	NotificationStatusAcknowledged NotificationStatus = "acknowledged"
)

type NotificationChannel string

const (
	NotificationChannelEmail     NotificationChannel = "email"
	NotificationChannelDashboard NotificationChannel = "dashboard"
)

// ThresholdOverride is one entry of a patient's ad-hoc override layer. Fields
// merge individually on top of the resolved rule, unlike patient-scoped rules
// which replace the global rule wholesale.
type ThresholdOverride struct {
	MinWarning  *float64 `json:"min_warning,omitempty"`
	MaxWarning  *float64 `json:"max_warning,omitempty"`
	MinCritical *float64 `json:"min_critical,omitempty"`
	MaxCritical *float64 `json:"max_critical,omitempty"`
}

type Patient struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time

	// Ad-hoc per-patient threshold adjustments, keyed by parameter.
	ThresholdOverrides map[ParameterType]ThresholdOverride `gorm:"serializer:json"`

	EmergencyContacts []EmergencyContact `gorm:"foreignKey:PatientID"`
	Measurements      []Measurement      `gorm:"foreignKey:PatientID"`
	Alerts            []Alert            `gorm:"foreignKey:PatientID"`
}

// EmergencyContact carries phone numbers only. Routing alert email to
// contacts is an extension point of the dispatcher, not implemented yet.
type EmergencyContact struct {
	ID        uint `gorm:"primaryKey"`
	PatientID uint `gorm:"index"`
	Name      string
	Phone     string
}

// ThresholdConfig is one threshold rule. PatientID nil means global scope.
type ThresholdConfig struct {
	ID          uint          `gorm:"primaryKey"`
	PatientID   *uint         `gorm:"index"`
	Parameter   ParameterType `gorm:"type:varchar(40);index"`
	MinWarning  *float64
	MaxWarning  *float64
	MinCritical *float64
	MaxCritical *float64
	Enabled     bool `gorm:"index"`
	Priority    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Measurement struct {
	ID          uint `gorm:"primaryKey"`
	PatientID   uint `gorm:"index"`
	Timestamp   time.Time
	HeartRate   *float64
	SpO2        *float64
	SystolicBP  *float64
	DiastolicBP *float64
	Temperature *float64
	RawRecordID *uint
}

// ParameterValue returns the measured value for one parameter, nil when the
// measurement does not carry it.
func (m *Measurement) ParameterValue(p ParameterType) *float64 {
	switch p {
	case ParameterHeartRate:
		return m.HeartRate
	case ParameterSpO2:
		return m.SpO2
	case ParameterSystolicBP:
		return m.SystolicBP
	case ParameterDiastolicBP:
		return m.DiastolicBP
	case ParameterTemperature:
		return m.Temperature
	}
	return nil
}

type Alert struct {
	ID                uint          `gorm:"primaryKey"`
	PatientID         uint          `gorm:"index:idx_alerts_recent"`
	AlertType         string        `gorm:"type:varchar(80)"`
	Severity          Severity      `gorm:"type:varchar(20);index"`
	Parameter         ParameterType `gorm:"type:varchar(40);index:idx_alerts_recent"`
	MeasuredValue     float64
	ThresholdExceeded float64
	MeasurementID     *uint
	Message           string
	Status            AlertStatus `gorm:"type:varchar(20);index:idx_alerts_recent"`
	EscalationLevel   int
	CreatedAt         time.Time `gorm:"index:idx_alerts_recent"`
	AcknowledgedAt    *time.Time
	AcknowledgedBy    *string
	ResolvedAt        *time.Time
	ResolvedBy        *string
	ResolutionNotes   *string

	Notifications []Notification `gorm:"foreignKey:AlertID"`
}

// EvaluationResult summarizes one measurement evaluation. EvaluatedCount
// counts parameters that had both a value and a resolved rule.
type EvaluationResult struct {
	HasAlerts      bool
	Alerts         []Alert
	EvaluatedCount int
}

// DispatchResult counts outbound notification outcomes for one alert.
type DispatchResult struct {
	Sent   int
	Failed int
}

type Notification struct {
	ID                uint                `gorm:"primaryKey"`
	AlertID           uint                `gorm:"index"`
	RecipientType     string              `gorm:"type:varchar(40)"`
	RecipientContact  string              `gorm:"type:varchar(255)"`
	Channel           NotificationChannel `gorm:"type:varchar(20)"`
	Subject           *string
	Body              *string
	Status            NotificationStatus `gorm:"type:varchar(20);index"`
	ProviderMessageID *string
	ErrorMessage      *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
