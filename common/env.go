// Package common holds the names and defaults shared by the colsched
// commands and the view-model daemon.
package common

// Environment variable names for configuration. Every one of them can
// also be set in a .env file read at startup.
const (
	// APIURLEnv is the base URL of the college schedule API.
	APIURLEnv = "COLSCHED_API_URL"

	// FixtureEnv points at a JSON fixture used instead of the API.
	FixtureEnv = "COLSCHED_FIXTURE"

	// ProxyEnv is an http, https or socks5 proxy URL for API requests.
	ProxyEnv = "COLSCHED_PROXY"

	// TimeoutEnv bounds every fetch, e.g. "30s".
	TimeoutEnv = "COLSCHED_TIMEOUT"

	// DaysEnv is the number of days requested per schedule fetch.
	DaysEnv = "COLSCHED_DAYS"

	// DefaultGroupEnv overrides the group selected after the list loads.
	DefaultGroupEnv = "COLSCHED_DEFAULT_GROUP"

	// RPCSecretEnv is the bearer token required by the serve endpoints.
	RPCSecretEnv = "COLSCHED_RPC_SECRET"

	// RPCAddrEnv is the listen address of the serve command.
	RPCAddrEnv = "COLSCHED_RPC_ADDR"

	// RefreshEnv is the cron expression of the serve refresh job.
	RefreshEnv = "COLSCHED_REFRESH"

	// EnvFileEnv overrides the path of the .env file.
	EnvFileEnv = "COLSCHED_ENV_FILE"

	// DebugEnv enables debug logging.
	DebugEnv = "COLSCHED_DEBUG"
)
