package vitals

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"caremonitor.io/vital-alert-service/pkg/common"
	"caremonitor.io/vital-alert-service/pkg/models"
)

// GlobalRuleCacheTTL bounds how stale the cached global rules may get when
// nobody invalidates explicitly.
const GlobalRuleCacheTTL = 5 * time.Minute

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// globalRuleCache holds the enabled global threshold rules. Readers get a
// stale-but-consistent snapshot bounded by the TTL; any global-rule mutation
// must invalidate immediately. Concurrent repopulation after an invalidation
// is idempotent, last write wins.
type globalRuleCache struct {
	mu        sync.RWMutex
	clock     Clock
	rules     map[models.ParameterType]models.ThresholdConfig
	fetchedAt time.Time
}

func newGlobalRuleCache(clock Clock) *globalRuleCache {
	return &globalRuleCache{clock: clock}
}

func (c *globalRuleCache) get() (map[models.ParameterType]models.ThresholdConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.rules == nil || c.clock.Now().Sub(c.fetchedAt) > GlobalRuleCacheTTL {
		return nil, false
	}
	return c.rules, true
}

func (c *globalRuleCache) set(rules map[models.ParameterType]models.ThresholdConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = rules
	c.fetchedAt = c.clock.Now()
}

func (c *globalRuleCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = nil
}

func (v *Vitals) globalRules() (map[models.ParameterType]models.ThresholdConfig, error) {
	cache := v.ruleCache()

	if rules, ok := cache.get(); ok {
		return rules, nil
	}

	var rows []models.ThresholdConfig
	err := v.Db.Conn.
		Where("patient_id IS NULL AND enabled = ?", true).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	rules := make(map[models.ParameterType]models.ThresholdConfig, len(rows))
	for _, row := range rows {
		rules[row.Parameter] = row
	}

	cache.set(rules)
	return rules, nil
}

// replaceWithPatientRules applies the patient layer: a patient-scoped rule
// replaces the global entry for its parameter wholesale.
func replaceWithPatientRules(resolved map[models.ParameterType]models.ThresholdConfig, patientRules []models.ThresholdConfig) {
	for _, rule := range patientRules {
		resolved[rule.Parameter] = rule
	}
}

// applyFieldOverrides applies the ad-hoc layer: each non-nil bound overrides
// the corresponding field individually, everything else is left alone.
func applyFieldOverrides(resolved map[models.ParameterType]models.ThresholdConfig, overrides map[models.ParameterType]models.ThresholdOverride) {
	for parameter, override := range overrides {
		cfg, ok := resolved[parameter]
		if !ok {
			continue
		}
		if override.MinWarning != nil {
			cfg.MinWarning = override.MinWarning
		}
		if override.MaxWarning != nil {
			cfg.MaxWarning = override.MaxWarning
		}
		if override.MinCritical != nil {
			cfg.MinCritical = override.MinCritical
		}
		if override.MaxCritical != nil {
			cfg.MaxCritical = override.MaxCritical
		}
		resolved[parameter] = cfg
	}
}

func (v *Vitals) resolveThresholds(patientID uint) (map[models.ParameterType]models.ThresholdConfig, error) {
	globals, err := v.globalRules()
	if err != nil {
		return nil, err
	}

	// Work on a copy, the cached map is shared between resolvers.
	resolved := make(map[models.ParameterType]models.ThresholdConfig, len(globals))
	for parameter, rule := range globals {
		resolved[parameter] = rule
	}

	var patientRules []models.ThresholdConfig
	err = v.Db.Conn.
		Where("patient_id = ? AND enabled = ?", patientID, true).
		Order("id asc").
		Find(&patientRules).Error
	if err != nil {
		return nil, err
	}
	replaceWithPatientRules(resolved, patientRules)

	var patient models.Patient
	err = v.Db.Conn.First(&patient, patientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// unknown patient still resolves against global+patient rules
			return resolved, nil
		}
		return nil, err
	}
	applyFieldOverrides(resolved, patient.ThresholdOverrides)

	return resolved, nil
}

func (v *Vitals) upsertRule(input *models.ThresholdConfig) error {
	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryThreshold),
	)

	logger.Info("Received threshold rule", zap.Reflect("rule", input))

	// One enabled row per (scope, parameter): update it in place when present.
	var existing models.ThresholdConfig
	query := v.Db.Conn.Where("parameter = ? AND enabled = ?", input.Parameter, true)
	if input.PatientID == nil {
		query = query.Where("patient_id IS NULL")
	} else {
		query = query.Where("patient_id = ?", *input.PatientID)
	}

	err := query.First(&existing).Error
	switch {
	case err == nil:
		input.ID = existing.ID
		input.CreatedAt = existing.CreatedAt
		err = v.Db.Conn.Save(input).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = v.Db.Conn.Create(input).Error
	}
	if err != nil {
		return err
	}

	if input.PatientID == nil {
		v.invalidateGlobalCache()
	}

	logger.Info("Upserted threshold rule", zap.Reflect("rule", input))
	return nil
}

func (v *Vitals) invalidateGlobalCache() {
	v.ruleCache().invalidate()
}

type IThresholdImpl struct {
	vitals *Vitals
}

func (it *IThresholdImpl) ResolveThresholds(patientID uint) (map[models.ParameterType]models.ThresholdConfig, error) {
	return it.vitals.resolveThresholds(patientID)
}

func (it *IThresholdImpl) UpsertRule(rule *models.ThresholdConfig) error {
	return it.vitals.upsertRule(rule)
}

func (it *IThresholdImpl) InvalidateGlobalCache() {
	it.vitals.invalidateGlobalCache()
}

func (v *Vitals) GetIThreshold() IThreshold {
	return &IThresholdImpl{vitals: v}
}
