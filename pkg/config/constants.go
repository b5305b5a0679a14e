package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "NAMAS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvDBDSN  = "NAMAS_DB_DSN"
	EnvDBHost = "NAMAS_DB_HOST"
	EnvDBUser = "NAMAS_DB_USER"
	EnvDBName = "NAMAS_DB_NAME"
)

var componentDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
