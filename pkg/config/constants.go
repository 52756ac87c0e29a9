package config

// EnvPrefix is passed to envconfig; tags carry the full variable names.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "OYE_APP_ENV"

	EnvDBDSN  = "OYE_DB_DSN"
	EnvDBHost = "OYE_DB_HOST"
	EnvDBUser = "OYE_DB_USER"
	EnvDBName = "OYE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
