package vitals

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"caremonitor.io/vital-alert-service/pkg/common"
	"caremonitor.io/vital-alert-service/pkg/metrics"
	"caremonitor.io/vital-alert-service/pkg/models"
)

const (
	DefaultDispatchWorkers   = 4
	DefaultDispatchQueueSize = 64

	// Bound on one mail-provider call so a hung provider cannot leak an
	// in-flight notification indefinitely.
	mailSendTimeout = 10 * time.Second
)

type recipient struct {
	Type    string
	Contact string
}

// buildRecipients is the extension point for notification routing. Today the
// only recipient is the configured staff address; emergency contacts carry
// phone numbers and have no email channel yet.
func (v *Vitals) buildRecipients(patient *models.Patient, alert *models.Alert) []recipient {
	var recipients []recipient
	if v.StaffEmail != "" {
		recipients = append(recipients, recipient{Type: "staff", Contact: v.StaffEmail})
	}
	return recipients
}

type severityStyle struct {
	Tag   string
	Color string
}

var severityStyles = map[models.Severity]severityStyle{
	models.SeverityInfo:      {Tag: "INFO", Color: "#2980b9"},
	models.SeverityWarning:   {Tag: "WARNING", Color: "#f39c12"},
	models.SeverityAlarm:     {Tag: "ALARM", Color: "#d35400"},
	models.SeverityEmergency: {Tag: "EMERGENCY", Color: "#c0392b"},
}

var alertEmailTemplate = template.Must(template.New("alert_email").Parse(strings.TrimSpace(`
<div style="border-left:6px solid {{.Color}};padding:12px">
  <h2 style="color:{{.Color}}">{{.Tag}}: {{.PatientName}}</h2>
  <p>{{.Message}}</p>
  <p>Measured value: <b>{{printf "%.1f" .MeasuredValue}} {{.Unit}}</b>
     (limit {{printf "%.1f" .ThresholdExceeded}} {{.Unit}})</p>
  <p>Raised at {{.CreatedAt}}</p>
</div>
`)))

func renderAlertEmail(alert *models.Alert, patient *models.Patient) (subject string, body string, err error) {
	style := severityStyles[alert.Severity]
	info := models.ParameterInfos[alert.Parameter]

	subject = fmt.Sprintf("[%s] %s: %s", style.Tag, patient.Name, info.Label)

	var sb strings.Builder
	err = alertEmailTemplate.Execute(&sb, map[string]any{
		"Tag":               style.Tag,
		"Color":             style.Color,
		"PatientName":       patient.Name,
		"Message":           alert.Message,
		"MeasuredValue":     alert.MeasuredValue,
		"ThresholdExceeded": alert.ThresholdExceeded,
		"Unit":              info.Unit,
		"CreatedAt":         alert.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return "", "", err
	}
	return subject, sb.String(), nil
}

// dispatchAlert is the synchronous dispatch body. A mailer failure is
// recorded on the notification row and never propagated; a persistence
// failure on a notification write does propagate.
func (v *Vitals) dispatchAlert(alert *models.Alert) (models.DispatchResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDispatch),
	)

	start := time.Now()
	defer func() {
		metrics.DispatchDuration.Observe(time.Since(start).Seconds())
	}()

	var result models.DispatchResult

	if v.Mailer == nil || !v.Mailer.IsConfigured() {
		logger.Info("Mailer not configured, skipping dispatch", zap.Uint("alert_id", alert.ID))
		return result, nil
	}

	var patient models.Patient
	if err := v.Db.Conn.First(&patient, alert.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Patient not found for alert dispatch",
				zap.Uint("alert_id", alert.ID),
				zap.Uint("patient_id", alert.PatientID),
			)
			return result, nil
		}
		return result, err
	}

	subject, body, err := renderAlertEmail(alert, &patient)
	if err != nil {
		return result, err
	}

	for _, r := range v.buildRecipients(&patient, alert) {
		notification := models.Notification{
			AlertID:          alert.ID,
			RecipientType:    r.Type,
			RecipientContact: r.Contact,
			Channel:          models.NotificationChannelEmail,
			Subject:          &subject,
			Body:             &body,
			Status:           models.NotificationStatusPending,
		}
		if err := v.Db.Conn.Create(&notification).Error; err != nil {
			return result, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
		sendResult, sendErr := v.Mailer.Send(ctx, r.Contact, subject, body)
		cancel()

		switch {
		case sendErr != nil:
			notification.Status = models.NotificationStatusFailed
			notification.ErrorMessage = common.Ptr(sendErr.Error())
			result.Failed++
		case !sendResult.Success:
			notification.Status = models.NotificationStatusFailed
			notification.ErrorMessage = common.Ptr(sendResult.Error)
			result.Failed++
		default:
			notification.Status = models.NotificationStatusSent
			if sendResult.MessageID != "" {
				notification.ProviderMessageID = common.Ptr(sendResult.MessageID)
			}
			result.Sent++
		}

		if err := v.Db.Conn.Save(&notification).Error; err != nil {
			return result, err
		}

		metrics.NotificationsTotal.
			WithLabelValues(string(notification.Channel), string(notification.Status)).
			Inc()
	}

	// In-app visibility record, written regardless of email outcomes.
	dashboard := models.Notification{
		AlertID:       alert.ID,
		RecipientType: "dashboard",
		Channel:       models.NotificationChannelDashboard,
		Status:        models.NotificationStatusSent,
	}
	if err := v.Db.Conn.Create(&dashboard).Error; err != nil {
		return result, err
	}
	metrics.NotificationsTotal.
		WithLabelValues(string(models.NotificationChannelDashboard), string(models.NotificationStatusSent)).
		Inc()

	logger.Info("Alert dispatched",
		zap.Uint("alert_id", alert.ID),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// dispatchPool decouples notification dispatch from the measurement-ingestion
// path: alerts are fed through a buffered channel into a bounded set of
// worker goroutines, and outcomes are observed only through logs and metrics.
type dispatchPool struct {
	vitals  *Vitals
	alerts  chan *models.Alert
	workers int

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func (v *Vitals) StartDispatchPool(workers, queueSize int) {
	if workers <= 0 {
		workers = DefaultDispatchWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultDispatchQueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool := &dispatchPool{
		vitals:  v,
		alerts:  make(chan *models.Alert, queueSize),
		workers: workers,
		ctx:     ctx,
		cancel:  cancel,
	}

	v.poolMu.Lock()
	v.pool = pool
	v.poolMu.Unlock()

	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDispatch),
	)
	logger.Info("Starting dispatch pool",
		zap.Int("workers", workers),
		zap.Int("queue_size", queueSize),
	)

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}
}

// StopDispatchPool stops accepting new pool work and blocks until the workers
// have drained every alert already queued.
func (v *Vitals) StopDispatchPool() {
	v.poolMu.Lock()
	pool := v.pool
	v.pool = nil
	v.poolMu.Unlock()

	if pool == nil {
		return
	}
	pool.cancel()
	pool.wg.Wait()
}

func (p *dispatchPool) worker(id int) {
	defer p.wg.Done()

	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDispatch),
		zap.Int("worker_id", id),
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Dispatch worker panic recovered",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			metrics.PanicsRecovered.WithLabelValues("dispatch_worker").Inc()
		}
	}()

	for {
		select {
		case <-p.ctx.Done():
			p.drain()
			return
		case alert := <-p.alerts:
			metrics.DispatchQueueDepth.Set(float64(len(p.alerts)))
			p.vitals.runDispatch(alert)
		}
	}
}

// drain dispatches whatever is still queued after cancellation. Queued alerts
// are already persisted; dropping them would leave alerts with no
// notification record at all.
func (p *dispatchPool) drain() {
	for {
		select {
		case alert := <-p.alerts:
			metrics.DispatchQueueDepth.Set(float64(len(p.alerts)))
			p.vitals.runDispatch(alert)
		default:
			return
		}
	}
}

// runDispatch executes one dispatch and reports the outcome to logs only.
func (v *Vitals) runDispatch(alert *models.Alert) {
	logger := common.GetLoggerWith(
		common.LoggerNameAlertEngine,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDispatch),
	)

	if _, err := v.dispatchAlert(alert); err != nil {
		logger.Error("Alert dispatch failed",
			zap.Uint("alert_id", alert.ID),
			zap.Error(err),
		)
	}
}

// enqueueAlert never blocks the caller: when the queue is full or the pool is
// not running, dispatch falls back to its own goroutine.
func (v *Vitals) enqueueAlert(alert *models.Alert) {
	v.poolMu.Lock()
	pool := v.pool
	v.poolMu.Unlock()

	if pool == nil {
		go v.runDispatch(alert)
		return
	}

	select {
	case <-pool.ctx.Done():
		// pool is shutting down, a queued alert may never be drained
		go v.runDispatch(alert)
	case pool.alerts <- alert:
		metrics.DispatchQueueDepth.Set(float64(len(pool.alerts)))
	default:
		go v.runDispatch(alert)
	}
}

type IDispatchImpl struct {
	vitals *Vitals
}

func (id *IDispatchImpl) DispatchAlert(alert *models.Alert) (models.DispatchResult, error) {
	return id.vitals.dispatchAlert(alert)
}

func (id *IDispatchImpl) EnqueueAlert(alert *models.Alert) {
	id.vitals.enqueueAlert(alert)
}

func (v *Vitals) GetIDispatch() IDispatch {
	return &IDispatchImpl{vitals: v}
}
