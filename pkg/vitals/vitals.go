package vitals

import (
	"sync"
	"time"

	"caremonitor.io/vital-alert-service/pkg/db"
	"caremonitor.io/vital-alert-service/pkg/mailer"
	"caremonitor.io/vital-alert-service/pkg/models"
)

type IThreshold interface {
	ResolveThresholds(patientID uint) (map[models.ParameterType]models.ThresholdConfig, error)
	UpsertRule(rule *models.ThresholdConfig) error
	InvalidateGlobalCache()
}

type IAlert interface {
	CreateAlert(alert *models.Alert) error
	HasRecentActiveAlert(patientID uint, parameter models.ParameterType, window time.Duration) (bool, error)
	UpdateAlertStatus(alertID uint, status models.AlertStatus, actorID *string, notes *string) error
	GetActiveAlertsForPatient(patientID uint) ([]models.Alert, error)
	GetAllActiveAlerts() ([]models.Alert, error)
	GetAlertCountsBySeverity() (map[models.Severity]int64, error)
}

type IDispatch interface {
	DispatchAlert(alert *models.Alert) (models.DispatchResult, error)
	EnqueueAlert(alert *models.Alert)
}

type IEvaluate interface {
	EvaluateMeasurement(m *models.Measurement) (*models.EvaluationResult, error)
}

type Vitals struct {
	Db     db.DB
	Mailer mailer.Mailer

	// StaffEmail is the single configured notification recipient. Contact
	// list construction lives in buildRecipients and is the extension point
	// for routing to emergency contacts.
	StaffEmail string

	Threshold IThreshold
	Alert     IAlert
	Dispatch  IDispatch
	Evaluate  IEvaluate

	cache     *globalRuleCache
	cacheOnce sync.Once

	poolMu sync.Mutex
	pool   *dispatchPool
}

type ServiceOpts struct {
	Threshold IThreshold
	Alert     IAlert
	Dispatch  IDispatch
	Evaluate  IEvaluate
}

func (v *Vitals) WithServices(opts ServiceOpts) *Vitals {
	if opts.Threshold != nil {
		v.Threshold = opts.Threshold
	}
	if opts.Alert != nil {
		v.Alert = opts.Alert
	}
	if opts.Dispatch != nil {
		v.Dispatch = opts.Dispatch
	}
	if opts.Evaluate != nil {
		v.Evaluate = opts.Evaluate
	}
	return v
}

// WithClock replaces the clock driving the global-rule cache TTL. Must be
// called before the first resolve.
func (v *Vitals) WithClock(clock Clock) *Vitals {
	v.cacheOnce.Do(func() {})
	v.cache = newGlobalRuleCache(clock)
	return v
}

func (v *Vitals) ruleCache() *globalRuleCache {
	v.cacheOnce.Do(func() {
		if v.cache == nil {
			v.cache = newGlobalRuleCache(systemClock{})
		}
	})
	return v.cache
}
