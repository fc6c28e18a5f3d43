package constants

import "time"

// General cache keys and TTLs
const (
	AlertSummaryCacheKey = "dashboard:alert_summary"
	AlertSummaryCacheTTL = 60 * time.Second
)
