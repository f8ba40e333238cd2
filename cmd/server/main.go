package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"caremonitor.io/vital-alert-service/pkg/common"
	"caremonitor.io/vital-alert-service/pkg/db"
	alertHttp "caremonitor.io/vital-alert-service/pkg/http"
	"caremonitor.io/vital-alert-service/pkg/mailer"
	"caremonitor.io/vital-alert-service/pkg/vitals"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	alertDbType := os.Getenv(common.EnvKeyAlertDBType)
	switch alertDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown ALERT_DB_TYPE: " + alertDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyAlertHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyAlertDefaultRate), 64); err != nil {
		log.Fatal("Invalid ALERT_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyAlertDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid ALERT_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	dispatchWorkers := vitals.DefaultDispatchWorkers
	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyDispatchWorkers)); raw != "" {
		if dispatchWorkers, err = strconv.Atoi(raw); err != nil {
			log.Fatal("Invalid ALERT_DISPATCH_WORKERS, should be an int value")
		}
	}

	dispatchQueueSize := vitals.DefaultDispatchQueueSize
	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyDispatchQueueSize)); raw != "" {
		if dispatchQueueSize, err = strconv.Atoi(raw); err != nil {
			log.Fatal("Invalid ALERT_DISPATCH_QUEUE_SIZE, should be an int value")
		}
	}

	logger := common.GetLogger()

	alertMailer := mailer.NewSendGridMailer(
		os.Getenv(common.EnvKeySendgridApiKey),
		"Vital Alert Service",
		os.Getenv(common.EnvKeyAlertFromEmail),
	)
	if !alertMailer.IsConfigured() {
		logger.Warn("SENDGRID_API_KEY not set, email notifications disabled")
	}

	vitalsCore := vitals.Vitals{
		Db:         *dbInstance,
		Mailer:     alertMailer,
		StaffEmail: os.Getenv(common.EnvKeyStaffAlertEmail),
	}
	vitalsCore.WithServices(vitals.ServiceOpts{
		Threshold: vitalsCore.GetIThreshold(),
		Alert:     vitalsCore.GetIAlert(),
		Dispatch:  vitalsCore.GetIDispatch(),
		Evaluate:  vitalsCore.GetIEvaluate(),
	})

	vitalsCore.StartDispatchPool(dispatchWorkers, dispatchQueueSize)
	defer vitalsCore.StopDispatchPool()

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &alertHttp.RestfulServer{
		Server:           gin.Default(),
		Vitals:           &vitalsCore,
		RateLimiterStore: vitals.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
