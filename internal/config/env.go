package config

import (
	"os"
	"strconv"
)

// FromEnv builds a Config from environment variables, falling back to built-in
// defaults. It reads GEMINI_API_KEY, EMBEDDING_MODEL, EMBED_CACHE_URL,
// CACHE_MAX_ENTRIES, WEIGHTS_FILE, KEYWORD_WEIGHT, MATCH_WORKERS, PORT and
// REQUEST_TIMEOUT_SECONDS. Malformed numbers are ignored.
func FromEnv() Config {
	cfg := Config{
		APIKey:                getEnvString("GEMINI_API_KEY", ""),
		EmbeddingModel:        getEnvString("EMBEDDING_MODEL", ""),
		EmbedCacheURL:         getEnvString("EMBED_CACHE_URL", ""),
		CacheMaxEntries:       getEnvInt("CACHE_MAX_ENTRIES", DefaultCacheMaxEntries),
		WeightsFile:           getEnvString("WEIGHTS_FILE", ""),
		Workers:               getEnvInt("MATCH_WORKERS", 0),
		Port:                  getEnvInt("PORT", DefaultPort),
		RequestTimeoutSeconds: getEnvInt("REQUEST_TIMEOUT_SECONDS", DefaultRequestTimeoutSeconds),
	}
	if w, ok := getEnvFloat("KEYWORD_WEIGHT"); ok {
		cfg.KeywordWeight = &w
	}
	return cfg
}

// getEnvString gets an environment variable with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets an environment variable as a float, reporting whether it was set.
func getEnvFloat(key string) (float64, bool) {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
