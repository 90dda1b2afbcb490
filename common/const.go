package common

import "time"

const (
	AppName = "colsched"

	DefaultAPIURL   = "http://localhost:5000"
	DefaultRPCAddr  = "127.0.0.1:8765"
	DefaultMockAddr = ":5000"
	DefaultEnvFile  = ".env"
	DefaultTimeout  = 30 * time.Second

	// RefreshJobKey names the cron job re-fetching the selected schedule.
	RefreshJobKey = "schedule-refresh"
)
