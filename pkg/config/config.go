package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Storage       StorageConfig
	Telephony     TelephonyConfig
	Assembly      AssemblyAIConfig
	Groq          GroqConfig
	Search        SearchConfig
	KnowledgeBase KnowledgeBaseConfig
	Scheduler     SchedulerConfig
	Pipeline      PipelineConfig
	JWT           JWTConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PublicURL       string
}

// TelephonyConfig holds SIP voice connector configuration
type TelephonyConfig struct {
	BaseURL            string
	APIKey             string
	FromPhoneNumber    string
	MediaApplicationID string
}

// AssemblyAIConfig holds transcription service configuration
type AssemblyAIConfig struct {
	APIKey         string
	BaseURL        string
	WebhookBaseURL string
	WebhookSecret  string
}

// GroqConfig holds generative model configuration
type GroqConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
}

// SearchConfig holds OpenSearch configuration
type SearchConfig struct {
	ControlEndpoint string
	DataEndpoint    string
	Username        string
	Password        string
}

// KnowledgeBaseConfig holds retrieval-augmented-generation settings
type KnowledgeBaseConfig struct {
	NamePrefix   string
	NameSuffix   string
	EmbeddingDim int
	TopK         int
}

// SchedulerConfig holds dial-out schedule dispatcher settings
type SchedulerConfig struct {
	GroupName    string
	TickInterval string
}

// PipelineConfig holds artifact pipeline settings
type PipelineConfig struct {
	ChunkCharBudget int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret string
	AccessExpiry time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "*")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "meeting_summarizer"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "meeting-summarizer"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
		},
		Telephony: TelephonyConfig{
			BaseURL:            getEnv("TELEPHONY_API_URL", "http://localhost:9100"),
			APIKey:             getEnv("TELEPHONY_API_KEY", ""),
			FromPhoneNumber:    getEnv("SMA_PHONE", ""),
			MediaApplicationID: getEnv("SMA_APP", ""),
		},
		Assembly: AssemblyAIConfig{
			APIKey:         getEnv("ASSEMBLYAI_API_KEY", ""),
			BaseURL:        getEnv("ASSEMBLYAI_API_URL", "https://api.assemblyai.com"),
			WebhookBaseURL: getEnv("ASSEMBLYAI_WEBHOOK_BASE_URL", ""),
			WebhookSecret:  getEnv("ASSEMBLYAI_WEBHOOK_SECRET", ""),
		},
		Groq: GroqConfig{
			APIKey:         getEnv("GROQ_API_KEY", ""),
			BaseURL:        getEnv("GROQ_API_URL", "https://api.groq.com"),
			ChatModel:      getEnv("GROQ_CHAT_MODEL", "llama-3.1-70b-versatile"),
			EmbeddingModel: getEnv("GROQ_EMBEDDING_MODEL", "nomic-embed-text-v1.5"),
		},
		Search: SearchConfig{
			ControlEndpoint: getEnv("SEARCH_CONTROL_ENDPOINT", "http://localhost:9200"),
			DataEndpoint:    getEnv("SEARCH_DATA_ENDPOINT", "http://localhost:9200"),
			Username:        getEnv("SEARCH_USERNAME", ""),
			Password:        getEnv("SEARCH_PASSWORD", ""),
		},
		KnowledgeBase: KnowledgeBaseConfig{
			NamePrefix:   getEnv("KB_NAME_PREFIX", "meeting-summarizer"),
			NameSuffix:   getEnv("KB_NAME_SUFFIX", "dev"),
			EmbeddingDim: getEnvAsInt("KB_EMBEDDING_DIM", 768),
			TopK:         getEnvAsInt("KB_TOP_K", 5),
		},
		Scheduler: SchedulerConfig{
			GroupName:    getEnv("SCHEDULER_GROUP_NAME", "meeting-summarizer"),
			TickInterval: getEnv("SCHEDULER_TICK_INTERVAL", "@every 30s"),
		},
		Pipeline: PipelineConfig{
			ChunkCharBudget: getEnvAsInt("PIPELINE_CHUNK_CHAR_BUDGET", 12000),
		},
		JWT: JWTConfig{
			AccessSecret: getEnv("JWT_ACCESS_SECRET", "your-access-secret-change-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", "15m"),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Storage.BucketName == "" {
		return fmt.Errorf("STORAGE_BUCKET is required")
	}
	if c.Pipeline.ChunkCharBudget <= 0 {
		return fmt.Errorf("PIPELINE_CHUNK_CHAR_BUDGET must be positive")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
