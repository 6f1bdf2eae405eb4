package config

// EnvPrefix is the envconfig prefix applied to every variable.
const EnvPrefix = "VITRINEZAP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv        = "VITRINEZAP_APP_ENV"
	EnvPort          = "VITRINEZAP_APP_PORT"
	EnvDBDSN         = "VITRINEZAP_DB_DSN"
	EnvDBHost        = "VITRINEZAP_DB_HOST"
	EnvDBUser        = "VITRINEZAP_DB_USER"
	EnvDBName        = "VITRINEZAP_DB_NAME"
	EnvRedisURL      = "VITRINEZAP_REDIS_URL"
	EnvSessionSecret = "VITRINEZAP_SESSION_SECRET"
	EnvSessionIssuer = "VITRINEZAP_SESSION_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
