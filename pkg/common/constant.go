package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyAlertDBType string = "ALERT_DB_TYPE"
	EnvKeyAlertDbPath string = "ALERT_DB_PATH"

	EnvKeyAlertHttpHostPort string = "ALERT_HTTP_HOST_PORT"

	EnvKeyAlertDefaultRate  string = "ALERT_DEFAULT_RATE"
	EnvKeyAlertDefaultBurst string = "ALERT_DEFAULT_BURST"

	EnvKeySendgridApiKey string = "SENDGRID_API_KEY"
	EnvKeyAlertFromEmail string = "ALERT_FROM_EMAIL"
	EnvKeyStaffAlertEmail string = "STAFF_ALERT_EMAIL"

	EnvKeyDispatchWorkers   string = "ALERT_DISPATCH_WORKERS"
	EnvKeyDispatchQueueSize string = "ALERT_DISPATCH_QUEUE_SIZE"

	LoggerNameAlertEngine   string = "alert_engine"
	LoggerNameRestfulServer string = "restful_server"
	LoggerFieldCategory     string = "category"

	LoggerCategoryThreshold  string = "threshold"
	LoggerCategoryEvaluate   string = "evaluate"
	LoggerCategoryAlertStore string = "alert_store"
	LoggerCategoryDispatch   string = "dispatch"
)
