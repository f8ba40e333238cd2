package vitals

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"caremonitor.io/vital-alert-service/pkg/common"
	"caremonitor.io/vital-alert-service/pkg/mailer"
	mailermocks "caremonitor.io/vital-alert-service/pkg/mailer/mocks"
	"caremonitor.io/vital-alert-service/pkg/models"
	_ "caremonitor.io/vital-alert-service/pkg/testing"
)

func notificationsForAlert(t *testing.T, v *Vitals, alertID uint) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	require.NoError(t, v.Db.Conn.Where("alert_id = ?", alertID).Order("id asc").Find(&notifications).Error)
	return notifications
}

func TestDispatchAlert_MailerUnconfigured(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, v, _, _, _ := GetMockVitalsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	mockMailer := mailermocks.NewMockMailer(ctrl)
	mockMailer.EXPECT().IsConfigured().Return(false).Times(1)
	v.Mailer = mockMailer
	v.StaffEmail = "ward@example.com"

	patient := createTestPatient(t, v, "Linus")
	alert := models.Alert{PatientID: patient.ID, Parameter: models.ParameterHeartRate, Severity: models.SeverityWarning}
	require.NoError(t, v.Alert.CreateAlert(&alert))

	result, err := v.Dispatch.DispatchAlert(&alert)
	require.NoError(t, err)
	assert.Equal(t, models.DispatchResult{Sent: 0, Failed: 0}, result)
	assert.Empty(t, notificationsForAlert(t, v, alert.ID))
}

func TestDispatchAlert_PatientMissing(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, v, _, _, _ := GetMockVitalsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	mockMailer := mailermocks.NewMockMailer(ctrl)
	mockMailer.EXPECT().IsConfigured().Return(true).Times(1)
	v.Mailer = mockMailer
	v.StaffEmail = "ward@example.com"

	alert := models.Alert{ID: 0, PatientID: 4294967290, Parameter: models.ParameterHeartRate, Severity: models.SeverityWarning}

	result, err := v.Dispatch.DispatchAlert(&alert)
	require.NoError(t, err)
	assert.Equal(t, models.DispatchResult{Sent: 0, Failed: 0}, result)
}

func TestDispatchAlert_SendSuccess(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, v, _, _, _ := GetMockVitalsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	mockMailer := mailermocks.NewMockMailer(ctrl)
	mockMailer.EXPECT().IsConfigured().Return(true).Times(1)
	mockMailer.EXPECT().
		Send(gomock.Any(), gomock.Eq("ward@example.com"), gomock.Any(), gomock.Any()).
		Return(&mailer.SendResult{Success: true, MessageID: "sg-123"}, nil).
		Times(1)
	v.Mailer = mockMailer
	v.StaffEmail = "ward@example.com"

	patient := createTestPatient(t, v, "Sophie")
	alert := models.Alert{
		PatientID:         patient.ID,
		Parameter:         models.ParameterHeartRate,
		Severity:          models.SeverityEmergency,
		MeasuredValue:     150.0,
		ThresholdExceeded: 120.0,
		Message:           "Heart rate 150.0 bpm is above the critical limit of 120.0 bpm",
	}
	require.NoError(t, v.Alert.CreateAlert(&alert))

	result, err := v.Dispatch.DispatchAlert(&alert)
	require.NoError(t, err)
	assert.Equal(t, models.DispatchResult{Sent: 1, Failed: 0}, result)

	notifications := notificationsForAlert(t, v, alert.ID)
	require.Len(t, notifications, 2)

	email := notifications[0]
	assert.Equal(t, models.NotificationChannelEmail, email.Channel)
	assert.Equal(t, models.NotificationStatusSent, email.Status)
	assert.Equal(t, "staff", email.RecipientType)
	assert.Equal(t, "ward@example.com", email.RecipientContact)
	require.NotNil(t, email.ProviderMessageID)
	assert.Equal(t, "sg-123", *email.ProviderMessageID)
	require.NotNil(t, email.Subject)
	assert.Contains(t, *email.Subject, "[EMERGENCY]")
	assert.Contains(t, *email.Subject, "Sophie")
	require.NotNil(t, email.Body)
	assert.Contains(t, *email.Body, "150.0 bpm")

	dashboard := notifications[1]
	assert.Equal(t, models.NotificationChannelDashboard, dashboard.Channel)
	assert.Equal(t, models.NotificationStatusSent, dashboard.Status)
	assert.Nil(t, dashboard.Subject)
}

func TestDispatchAlert_SendFailureRecorded(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, v, _, _, _ := GetMockVitalsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	mockMailer := mailermocks.NewMockMailer(ctrl)
	mockMailer.EXPECT().IsConfigured().Return(true).Times(1)
	mockMailer.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&mailer.SendResult{Success: false, Error: "provider rejected message"}, nil).
		Times(1)
	v.Mailer = mockMailer
	v.StaffEmail = "ward@example.com"

	patient := createTestPatient(t, v, "Niklaus")
	alert := models.Alert{PatientID: patient.ID, Parameter: models.ParameterSpO2, Severity: models.SeverityWarning}
	require.NoError(t, v.Alert.CreateAlert(&alert))

	result, err := v.Dispatch.DispatchAlert(&alert)
	require.NoError(t, err, "mailer failure must not propagate")
	assert.Equal(t, models.DispatchResult{Sent: 0, Failed: 1}, result)

	notifications := notificationsForAlert(t, v, alert.ID)
	require.Len(t, notifications, 2)

	email := notifications[0]
	assert.Equal(t, models.NotificationStatusFailed, email.Status)
	require.NotNil(t, email.ErrorMessage)
	assert.Equal(t, "provider rejected message", *email.ErrorMessage)

	// dashboard record is written regardless of email outcome
	assert.Equal(t, models.NotificationChannelDashboard, notifications[1].Channel)
	assert.Equal(t, models.NotificationStatusSent, notifications[1].Status)
}

func TestDispatchAlert_SendErrorRecorded(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, v, _, _, _ := GetMockVitalsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	mockMailer := mailermocks.NewMockMailer(ctrl)
	mockMailer.EXPECT().IsConfigured().Return(true).Times(1)
	mockMailer.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("connection refused")).
		Times(1)
	v.Mailer = mockMailer
	v.StaffEmail = "ward@example.com"

	patient := createTestPatient(t, v, "Leslie")
	alert := models.Alert{PatientID: patient.ID, Parameter: models.ParameterTemperature, Severity: models.SeverityWarning}
	require.NoError(t, v.Alert.CreateAlert(&alert))

	result, err := v.Dispatch.DispatchAlert(&alert)
	require.NoError(t, err)
	assert.Equal(t, models.DispatchResult{Sent: 0, Failed: 1}, result)

	notifications := notificationsForAlert(t, v, alert.ID)
	require.Len(t, notifications, 2)
	require.NotNil(t, notifications[0].ErrorMessage)
	assert.Equal(t, "connection refused", *notifications[0].ErrorMessage)
}

func TestDispatchAlert_NoMailer(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, v, _, _, _ := GetMockVitalsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	v.Mailer = nil
	patient := createTestPatient(t, v, "Guido")
	alert := models.Alert{PatientID: patient.ID, Parameter: models.ParameterHeartRate, Severity: models.SeverityWarning}
	require.NoError(t, v.Alert.CreateAlert(&alert))

	result, err := v.Dispatch.DispatchAlert(&alert)
	require.NoError(t, err)
	assert.Equal(t, models.DispatchResult{Sent: 0, Failed: 0}, result)
}

func waitForNotifications(t *testing.T, v *Vitals, alertID uint, want int) []models.Notification {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		notifications := notificationsForAlert(t, v, alertID)
		if len(notifications) >= want {
			return notifications
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d notifications on alert %d", want, alertID)
	return nil
}

func TestDispatchPool_EnqueueProcessesAlert(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, v, _, _, _ := GetMockVitalsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	mockMailer := mailermocks.NewMockMailer(ctrl)
	mockMailer.EXPECT().IsConfigured().Return(true).AnyTimes()
	mockMailer.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&mailer.SendResult{Success: true, MessageID: "sg-pool"}, nil).
		AnyTimes()
	v.Mailer = mockMailer
	v.StaffEmail = "ward@example.com"

	v.StartDispatchPool(2, 4)
	defer v.StopDispatchPool()

	patient := createTestPatient(t, v, "Vint")
	alert := models.Alert{PatientID: patient.ID, Parameter: models.ParameterHeartRate, Severity: models.SeverityWarning}
	require.NoError(t, v.Alert.CreateAlert(&alert))

	v.Dispatch.EnqueueAlert(&alert)

	notifications := waitForNotifications(t, v, alert.ID, 2)
	assert.Equal(t, models.NotificationStatusSent, notifications[0].Status)
}

func TestDispatchPool_StopDrainsQueuedAlerts(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, v, _, _, _ := GetMockVitalsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	release := make(chan struct{})
	mockMailer := mailermocks.NewMockMailer(ctrl)
	mockMailer.EXPECT().IsConfigured().Return(true).AnyTimes()
	mockMailer.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, to, subject, html string) (*mailer.SendResult, error) {
			// hold the single worker on the first send so the rest of the
			// alerts are still queued when the pool is stopped
			<-release
			return &mailer.SendResult{Success: true}, nil
		}).
		AnyTimes()
	v.Mailer = mockMailer
	v.StaffEmail = "ward@example.com"

	v.StartDispatchPool(1, 32)

	patient := createTestPatient(t, v, "Barbara")
	const alertCount = 8
	alerts := make([]models.Alert, alertCount)
	for i := 0; i < alertCount; i++ {
		alerts[i] = models.Alert{PatientID: patient.ID, Parameter: models.ParameterHeartRate, Severity: models.SeverityWarning}
		require.NoError(t, v.Alert.CreateAlert(&alerts[i]))
		v.Dispatch.EnqueueAlert(&alerts[i])
	}

	stopped := make(chan struct{})
	go func() {
		v.StopDispatchPool()
		close(stopped)
	}()
	close(release)

	select {
	case <-stopped:
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for dispatch pool to stop")
	}

	for i := 0; i < alertCount; i++ {
		notifications := notificationsForAlert(t, v, alerts[i].ID)
		require.Lenf(t, notifications, 2, "alert %d must be dispatched before the pool exits", alerts[i].ID)
	}
}

func TestRenderAlertEmail_EscapesPatientName(t *testing.T) {
	common.SetTestLoggerNop()

	patient := &models.Patient{Name: `<script>alert("x")</script>`}
	alert := &models.Alert{
		Parameter:         models.ParameterHeartRate,
		Severity:          models.SeverityWarning,
		MeasuredValue:     110.0,
		ThresholdExceeded: 100.0,
		Message:           "Heart rate 110.0 bpm is above the warning limit of 100.0 bpm",
		CreatedAt:         time.Now(),
	}

	_, body, err := renderAlertEmail(alert, patient)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestEnqueueAlert_WithoutPoolStillDispatches(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, v, _, _, _ := GetMockVitalsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	mockMailer := mailermocks.NewMockMailer(ctrl)
	mockMailer.EXPECT().IsConfigured().Return(true).AnyTimes()
	mockMailer.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&mailer.SendResult{Success: true}, nil).
		AnyTimes()
	v.Mailer = mockMailer
	v.StaffEmail = "ward@example.com"

	patient := createTestPatient(t, v, "Tim BL")
	alert := models.Alert{PatientID: patient.ID, Parameter: models.ParameterSpO2, Severity: models.SeverityWarning}
	require.NoError(t, v.Alert.CreateAlert(&alert))

	v.Dispatch.EnqueueAlert(&alert)

	waitForNotifications(t, v, alert.ID, 2)
}
