package config

// EnvPrefix is empty because every envconfig tag carries the full OUTREACH_
// name already.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "OUTREACH_DB_DSN"
	EnvDBHost = "OUTREACH_DB_HOST"
	EnvDBUser = "OUTREACH_DB_USER"
	EnvDBName = "OUTREACH_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
