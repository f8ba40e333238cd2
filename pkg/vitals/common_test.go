package vitals

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"go.uber.org/mock/gomock"

	"caremonitor.io/vital-alert-service/pkg/db"
	"caremonitor.io/vital-alert-service/pkg/models"
	"caremonitor.io/vital-alert-service/pkg/vitals/mocks"
)

func GetMockVitalsWithMemorySqliteDialector(t *testing.T, useMockThreshold, useMockAlert, useMockDispatch bool) (
	*gomock.Controller,
	*Vitals,
	*mocks.MockIThreshold,
	*mocks.MockIAlert,
	*mocks.MockIDispatch,
) {
	ctrl := gomock.NewController(t)

	mockIThreshold := mocks.NewMockIThreshold(ctrl)
	mockIAlert := mocks.NewMockIAlert(ctrl)
	mockIDispatch := mocks.NewMockIDispatch(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	vitalsInstance := &Vitals{Db: *dbInstance}

	thresholdService := vitalsInstance.GetIThreshold()
	if useMockThreshold {
		thresholdService = mockIThreshold
	}

	alertService := vitalsInstance.GetIAlert()
	if useMockAlert {
		alertService = mockIAlert
	}

	dispatchService := vitalsInstance.GetIDispatch()
	if useMockDispatch {
		dispatchService = mockIDispatch
	}

	vitalsInstance.WithServices(ServiceOpts{
		Threshold: thresholdService,
		Alert:     alertService,
		Dispatch:  dispatchService,
		Evaluate:  vitalsInstance.GetIEvaluate(),
	})

	return ctrl, vitalsInstance, mockIThreshold, mockIAlert, mockIDispatch
}

// clearGlobalRules removes all global threshold rows. Global rules are shared
// state in the test database, so tests touching them start clean.
func clearGlobalRules(t *testing.T, v *Vitals) {
	err := v.Db.Conn.Where("patient_id IS NULL").Delete(&models.ThresholdConfig{}).Error
	if err != nil {
		t.Fatalf("failed to clear global rules: %v", err)
	}
	v.invalidateGlobalCache()
}

func createTestPatient(t *testing.T, v *Vitals, name string) *models.Patient {
	patient := &models.Patient{Name: name}
	if err := v.Db.Conn.Create(patient).Error; err != nil {
		t.Fatalf("failed to create test patient: %v", err)
	}
	return patient
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
