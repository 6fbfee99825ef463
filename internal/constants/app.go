package constants

// Application Information
const (
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvProduction = "production"
)

// Cache Key Prefixes
const (
	CacheKeyPrefix  = "notemind:"
	CacheKeySummary = CacheKeyPrefix + "summary:"
)
