package config

import "os"

type Storage struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Config struct {
	PostgresURI   string
	AnonKey       string
	ServiceKey    string
	NotifyChannel string
	LegacyAPIURL  string
	GenAIAPIKey   string
	GenAIBaseURL  string
	RedisURI      string
	FrontendURL   string
	Storage       Storage
	SecretKey     string
	CookieName    string
	SyncInterval  string
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI:   getEnv("DATABASE_URI", ""),
		AnonKey:       getEnv("DATABASE_ANON_KEY", ""),
		ServiceKey:    getEnv("DATABASE_SERVICE_KEY", ""),
		NotifyChannel: getEnv("NOTIFY_CHANNEL", "content_items_changes"),
		LegacyAPIURL:  getEnv("LEGACY_API_URL", ""),
		GenAIAPIKey:   getEnv("GENAI_API_KEY", ""),
		GenAIBaseURL:  getEnv("GENAI_BASE_URL", "https://api.openai.com/v1"),
		RedisURI:      getEnv("REDIS_URI", "127.0.0.1:6379"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
		Storage: Storage{
			AccountID:  getEnv("STORAGE_ACCOUNT_ID", ""),
			AccessKey:  getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:  getEnv("STORAGE_SECRET_KEY", ""),
			BucketName: getEnv("STORAGE_BUCKET_NAME", "media"),
			PublicURL:  getEnv("STORAGE_PUBLIC_URL", ""),
		},
		SecretKey:    getEnv("SECRET_KEY", ""),
		CookieName:   getEnv("COOKIE_NAME", "contentdesk_session"),
		SyncInterval: getEnv("SYNC_INTERVAL", "00h05m00s"),
	}
}

// GenAIEnabled reports whether the generation panel can be served.
// A missing key disables the feature instead of failing at call time.
func (c *Config) GenAIEnabled() bool {
	return c.GenAIAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
