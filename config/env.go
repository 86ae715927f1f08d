package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultMongoURI        = "mongodb://localhost:27017"
	defaultMongoDatabase   = "foodnest_db"
	defaultJWTSecret       = "change-me-in-production"
	defaultAccessTokenTTL  = "15m"
	defaultRefreshTokenTTL = "168h"
	defaultAppPort         = "8080"
	defaultAppEnv          = "local"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json and .env once. Later calls are no-ops.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"MONGO_URI":         defaultMongoURI,
		"MONGO_DB":          defaultMongoDatabase,
		"JWT_SECRET":        defaultJWTSecret,
		"ACCESS_TOKEN_TTL":  defaultAccessTokenTTL,
		"REFRESH_TOKEN_TTL": defaultRefreshTokenTTL,
		"APP_PORT":          defaultAppPort,
		"APP_ENV":           defaultAppEnv,
		"LOG_TO_MONGO":      "false",
		"RATE_LIMIT_MAX":    "300",
		"RATE_LIMIT_WINDOW": "1m",
	}
}

func MongoURI() string {
	_ = Load()
	return get("MONGO_URI", defaultMongoURI)
}

func MongoDatabase() string {
	_ = Load()
	return get("MONGO_DB", defaultMongoDatabase)
}

func JWTSecret() string {
	_ = Load()
	return get("JWT_SECRET", defaultJWTSecret)
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// AccessTokenTTL returns the access token lifetime (short-lived).
func AccessTokenTTL() time.Duration {
	_ = Load()
	return duration("ACCESS_TOKEN_TTL", defaultAccessTokenTTL)
}

// RefreshTokenTTL returns the refresh token lifetime (long-lived).
func RefreshTokenTTL() time.Duration {
	_ = Load()
	return duration("REFRESH_TOKEN_TTL", defaultRefreshTokenTTL)
}

// LogToMongo reports whether request logs should also be written to MongoDB.
func LogToMongo() bool {
	_ = Load()
	return get("LOG_TO_MONGO", "false") == "true"
}

func RateLimitMax() int {
	_ = Load()
	n, err := strconv.Atoi(get("RATE_LIMIT_MAX", "300"))
	if err != nil || n <= 0 {
		return 300
	}
	return n
}

func RateLimitWindow() time.Duration {
	_ = Load()
	return duration("RATE_LIMIT_WINDOW", "1m")
}

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string {
	_ = Load()
	return get("STORAGE_DISK", "local")
}

func StorageLocalRoot() string {
	_ = Load()
	return get("STORAGE_LOCAL_ROOT", "storage")
}

func StorageURL() string {
	_ = Load()
	return get("STORAGE_URL", "http://localhost:8080/storage")
}

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

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
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func duration(key, fallback string) time.Duration {
	d, err := time.ParseDuration(get(key, fallback))
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
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
