// Package config loads process configuration for the FreshMart API.
//
// Values are merged in order of precedence: defaults < config/app.json < .env.
// Call config.Load() once at startup; every accessor triggers Load lazily so
// tests can read config without bootstrapping.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDatabase = "freshmart"
	defaultAccessSecret  = "change-me-in-production"
	defaultRefreshSecret = "change-me-too-in-production"
	defaultAccessTTL     = time.Hour
	defaultRefreshTTL    = 30 * 24 * time.Hour
	defaultResetTTL      = 15 * time.Minute
	defaultAppPort       = "5000"
	defaultAppEnv        = "local"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"MONGO_URI":            defaultMongoURI,
		"MONGO_DATABASE":       defaultMongoDatabase,
		"ACCESS_TOKEN_SECRET":  defaultAccessSecret,
		"REFRESH_TOKEN_SECRET": defaultRefreshSecret,
		"ACCESS_TOKEN_TTL":     "",
		"REFRESH_TOKEN_TTL":    "",
		"RESET_TOKEN_TTL":      "",
		"ADMIN_EMAILS":         "",
		"APP_PORT":             defaultAppPort,
		"APP_ENV":              defaultAppEnv,
		"LOG_TO_MONGO":         "false",
	}
}

func MongoURI() string {
	_ = Load()
	return get("MONGO_URI", defaultMongoURI)
}

func MongoDatabase() string {
	_ = Load()
	return get("MONGO_DATABASE", defaultMongoDatabase)
}

func AccessTokenSecret() string {
	_ = Load()
	return get("ACCESS_TOKEN_SECRET", defaultAccessSecret)
}

func RefreshTokenSecret() string {
	_ = Load()
	return get("REFRESH_TOKEN_SECRET", defaultRefreshSecret)
}

func AccessTokenTTL() time.Duration {
	return durationKey("ACCESS_TOKEN_TTL", defaultAccessTTL)
}

func RefreshTokenTTL() time.Duration {
	return durationKey("REFRESH_TOKEN_TTL", defaultRefreshTTL)
}

func ResetTokenTTL() time.Duration {
	return durationKey("RESET_TOKEN_TTL", defaultResetTTL)
}

// AdminEmails returns the allowlist of emails that register as admins.
// Entries are compared lowercased.
func AdminEmails() []string {
	_ = Load()

	raw := get("ADMIN_EMAILS", "")
	if raw == "" {
		return nil
	}

	var emails []string
	for _, e := range strings.Split(raw, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// LogToMongo reports whether request logs should also be written to MongoDB.
func LogToMongo() bool {
	_ = Load()
	return strings.EqualFold(get("LOG_TO_MONGO", "false"), "true")
}

func durationKey(key string, fallback time.Duration) time.Duration {
	_ = Load()

	raw := get(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	parsed, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range parsed {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
