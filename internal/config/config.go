package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration. Every engagement threshold
// the state machine and callback scheduler consume is a named field
// here rather than a literal in the component that uses it.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Engagement thresholds
	MinMessages        int // callbacks fire from this turn onward
	MaxMessages        int // hard session cap; termination at or beyond
	ProbingTurn        int // earliest turn the probing phase can start
	ExtractionTurn     int // turn at which extraction starts regardless of completeness
	MinExtractionTurns int // turns spent in extraction before an early wind-down

	// Detection
	KeywordDensityThreshold int // distinct keyword hits that fire the density layer

	// Text generation (Groq, OpenAI-compatible API)
	GroqAPIKey      string
	GroqBaseURL     string
	GroqModel       string
	GenerateTimeout time.Duration

	// Callback reporting
	CallbackURL     string
	CallbackTimeout time.Duration

	// Session store
	SessionIdleTTL time.Duration // 0 disables idle eviction

	// Optional Redis transcript archive
	RedisAddr     string
	RedisPassword string
	TranscriptTTL time.Duration
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		MinMessages:        getEnvAsInt("MIN_MESSAGES", 5),
		MaxMessages:        getEnvAsInt("MAX_MESSAGES", 10),
		ProbingTurn:        getEnvAsInt("PROBING_TURN", 3),
		ExtractionTurn:     getEnvAsInt("EXTRACTION_TURN", 5),
		MinExtractionTurns: getEnvAsInt("MIN_EXTRACTION_TURNS", 2),

		KeywordDensityThreshold: getEnvAsInt("KEYWORD_DENSITY_THRESHOLD", 2),

		GroqAPIKey:      getEnv("GROQ_API_KEY", ""),
		GroqBaseURL:     getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:       getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GenerateTimeout: getEnvAsDuration("GENERATE_TIMEOUT", 15*time.Second),

		CallbackURL:     getEnv("CALLBACK_URL", "https://hackathon.guvi.in/api/updateHoneyPotFinalResult"),
		CallbackTimeout: getEnvAsDuration("CALLBACK_TIMEOUT", 5*time.Second),

		SessionIdleTTL: getEnvAsDuration("SESSION_IDLE_TTL", 0),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		TranscriptTTL: getEnvAsDuration("TRANSCRIPT_TTL", 24*time.Hour),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
