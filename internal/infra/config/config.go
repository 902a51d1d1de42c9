package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	GeminiAPIKey string
	GeminiModel  string
	CohereAPIKey string
	CohereURL    string
	CohereModel  string

	BraveAPIKey  string
	BraveURL     string
	NewsAPIKey   string
	NewsAPIURL   string
	WikipediaURL string

	CaptionURL string

	HistoryWindow      int
	SearchTimeoutSec   int
	GenerateTimeoutSec int
	ProviderRatePerMin int
}

func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "3000"),

		DBHost:     getEnv("DB_HOST", "chat-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "chat_user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "chat_password"),
		DBName:     getEnv("DB_NAME", "chat_db"),

		GeminiAPIKey: getSecret("GEMINI_API_KEY", "GEMINI_API_KEY_FILE", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-pro-002"),
		CohereAPIKey: getSecret("COHERE_API_KEY", "COHERE_API_KEY_FILE", ""),
		CohereURL:    getEnv("COHERE_URL", "https://api.cohere.com"),
		CohereModel:  getEnv("COHERE_MODEL", "command-r"),

		BraveAPIKey:  getSecret("BRAVE_SEARCH_API_KEY", "BRAVE_SEARCH_API_KEY_FILE", ""),
		BraveURL:     getEnv("BRAVE_SEARCH_URL", "https://api.search.brave.com"),
		NewsAPIKey:   getSecret("NEWS_API_KEY", "NEWS_API_KEY_FILE", ""),
		NewsAPIURL:   getEnv("NEWS_API_URL", "https://newsapi.org"),
		WikipediaURL: getEnv("WIKIPEDIA_URL", "https://en.wikipedia.org"),

		CaptionURL: getEnv("CAPTION_URL", "https://api-inference.huggingface.co/models/Salesforce/blip-image-captioning-base"),

		HistoryWindow:      getEnvInt("CHAT_HISTORY_WINDOW", 5),
		SearchTimeoutSec:   getEnvInt("SEARCH_TIMEOUT_SEC", 10),
		GenerateTimeoutSec: getEnvInt("GENERATE_TIMEOUT_SEC", 30),
		ProviderRatePerMin: getEnvInt("PROVIDER_RATE_PER_MIN", 30),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
