package config

import (
	"os"
	"strconv"

	"github.com/yukikurage/printflow/internal/constants"
)

type Config struct {
	// DBDriver selects the remote backend: postgres, mysql or sqlite. Empty means local only.
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	// DBDSN overrides the DSN built from the DB_* parts.
	DBDSN string

	// LocalStore is file or sqlite.
	LocalStore   string
	LocalPath    string
	SeedDemoData bool

	// DirectorPINHash is a bcrypt hash; empty disables the role-switch PIN check.
	DirectorPINHash string

	OpenAIAPIKey string
	OpenAIModel  string
	// OpenAIBaseURL points the client at a compatible API; empty uses the default.
	OpenAIBaseURL string

	GinMode  string
	HTTPAddr string
	LogLevel string
}

func Load() *Config {
	return &Config{
		DBDriver:        getEnv("DB_DRIVER", ""),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "printflow"),
		DBPassword:      getEnv("DB_PASSWORD", "printflow"),
		DBName:          getEnv("DB_NAME", "printflow"),
		DBDSN:           getEnv("DB_DSN", ""),
		LocalStore:      getEnv("LOCAL_STORE", "file"),
		LocalPath:       getEnv("LOCAL_PATH", constants.DefaultLocalPath),
		SeedDemoData:    getEnvBool("SEED_DEMO_DATA", false),
		DirectorPINHash: getEnv("DIRECTOR_PIN_HASH", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", constants.DefaultOpenAIModel),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
		GinMode:         getEnv("GIN_MODE", "debug"),
		HTTPAddr:        getEnv("HTTP_ADDR", constants.DefaultHTTPAddr),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// RemoteConfigured reports whether remote backend configuration is present.
func (c *Config) RemoteConfigured() bool {
	return c.DBDriver != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
