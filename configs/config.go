package config

import (
	"os"
	"strconv"
)

type R2 struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	BucketName    string
	PublicBaseURL string
}

// Rotation holds the content-rotation policy knobs. The values here are
// product policy, not business law, so every one of them is env-overridable.
type Rotation struct {
	SingleItemCooldownDays  int
	ReviewReuseCooldownDays int
	SlotScanDays            int
	MaxDailySlots           int
	RetryCeiling            int
	DueBatchSize            int
	PublishDelaySeconds     int
	ContainerPollAttempts   int
	ContainerPollSeconds    int
}

type Config struct {
	GoogleClientID     string
	GoogleClientSecret string
	PostgresURI        string
	RedisURI           string
	CaptionServiceURL  string
	GraphicServiceURL  string
	R2                 R2
	Rotation           Rotation
	SecretKey          string
	CookieName         string
	AdminAPIKey        string
	HookSecret         string
}

func LoadConfig() *Config {
	return &Config{
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		RedisURI:           getEnv("REDIS_URI", ""),
		CaptionServiceURL:  getEnv("CAPTION_SERVICE_URL", ""),
		GraphicServiceURL:  getEnv("GRAPHIC_SERVICE_URL", ""),
		R2: R2{
			AccountID:     getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:     getEnv("R2_ACCESS_KEY", ""),
			SecretKey:     getEnv("R2_SECRET_KEY", ""),
			BucketName:    getEnv("R2_BUCKET_NAME", ""),
			PublicBaseURL: getEnv("R2_PUBLIC_BASE_URL", ""),
		},
		Rotation: Rotation{
			SingleItemCooldownDays:  getEnvInt("SINGLE_ITEM_COOLDOWN_DAYS", 14),
			ReviewReuseCooldownDays: getEnvInt("REVIEW_REUSE_COOLDOWN_DAYS", 30),
			SlotScanDays:            getEnvInt("SLOT_SCAN_DAYS", 14),
			MaxDailySlots:           getEnvInt("MAX_DAILY_SLOTS", 3),
			RetryCeiling:            getEnvInt("RETRY_CEILING", 3),
			DueBatchSize:            getEnvInt("DUE_BATCH_SIZE", 50),
			PublishDelaySeconds:     getEnvInt("PUBLISH_DELAY_SECONDS", 2),
			ContainerPollAttempts:   getEnvInt("CONTAINER_POLL_ATTEMPTS", 10),
			ContainerPollSeconds:    getEnvInt("CONTAINER_POLL_SECONDS", 5),
		},
		SecretKey:   getEnv("SECRET_KEY", ""),
		CookieName:  getEnv("COOKIE_NAME", "tradepost_session"),
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
		HookSecret:  getEnv("HOOK_SECRET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
