package constants

const (
	SaveBackendSQL   = "sql"
	SaveBackendRedis = "redis"
)

// ValidSaveBackends is the set of accepted SAVE_BACKEND values.
var ValidSaveBackends = []string{SaveBackendSQL, SaveBackendRedis}

// IsValidSaveBackend returns true if backend is one of the accepted values.
func IsValidSaveBackend(backend string) bool {
	for _, b := range ValidSaveBackends {
		if b == backend {
			return true
		}
	}
	return false
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)
