package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DB         DBConfig
	Server     ServerConfig
	Redis      RedisConfig
	LLM        LLMConfig
	Transcript TranscriptConfig
	Session    SessionConfig
	Logger     LoggerConfig
	CacheTTLs  CacheTTLConfig
}

type DBConfig struct {
	Path        string
	BusyTimeout time.Duration
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// LLMConfig selects and configures the classifier backend.
type LLMConfig struct {
	Provider           string // openai | ollama
	MaxTranscriptChars int
	Timeout            time.Duration
	OpenAI             OpenAIConfig
	Ollama             OllamaConfig
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OllamaConfig struct {
	ServerURL string
	Model     string
}

// TranscriptConfig selects the transcript acquisition strategy.
type TranscriptConfig struct {
	Strategy          string // official | scraper | proxy | manual
	Languages         []string
	MinPastedChars    int
	YouTubeAPIKey     string
	OAuthToken        string
	RequestsPerSecond float64
	Timeout           time.Duration
	Proxy             ProxyConfig
}

type ProxyConfig struct {
	URL    string
	APIKey string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type CacheTTLConfig struct {
	Quiz string
}

const (
	StrategyOfficial = "official"
	StrategyScraper  = "scraper"
	StrategyProxy    = "proxy"
	StrategyManual   = "manual"

	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 120)

	v.SetDefault("db.path", "sanctuary.db")
	v.SetDefault("db.busy_timeout", "5s")

	v.SetDefault("redis.db", 0)

	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.max_transcript_chars", 15000)
	v.SetDefault("llm.timeout", "90s")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.ollama.server_url", "http://localhost:11434")
	v.SetDefault("llm.ollama.model", "qwen3:0.6b")

	v.SetDefault("transcript.strategy", StrategyScraper)
	v.SetDefault("transcript.languages", []string{"en", "en-US"})
	v.SetDefault("transcript.min_pasted_chars", 200)
	v.SetDefault("transcript.requests_per_second", 2.0)
	v.SetDefault("transcript.timeout", "20s")

	v.SetDefault("session.ttl", "168h")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("cache_ttls.quiz", "24h")
}

// LoadConfig reads config.yaml (optional), a .env file (optional) and the
// process environment, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	// .env is a local convenience; a missing file is not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)

	// Conventional variable names win over the dotted-key mapping.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.LLM.OpenAI.APIKey = key
	}
	if key := os.Getenv("YOUTUBE_API_KEY"); key != "" {
		cfg.Transcript.YouTubeAPIKey = key
	}
	if key := os.Getenv("TRANSCRIPT_PROXY_KEY"); key != "" {
		cfg.Transcript.Proxy.APIKey = key
	}
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		cfg.Redis.Address = addr
	}
	if env := os.Getenv("ENV"); env != "" && env != "test" {
		cfg.Logger.Env = env
	}

	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		DB: DBConfig{
			Path:        v.GetString("db.path"),
			BusyTimeout: v.GetDuration("db.busy_timeout"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		LLM: LLMConfig{
			Provider:           strings.ToLower(v.GetString("llm.provider")),
			MaxTranscriptChars: v.GetInt("llm.max_transcript_chars"),
			Timeout:            v.GetDuration("llm.timeout"),
			OpenAI: OpenAIConfig{
				APIKey:  v.GetString("llm.openai.api_key"),
				Model:   v.GetString("llm.openai.model"),
				BaseURL: v.GetString("llm.openai.base_url"),
			},
			Ollama: OllamaConfig{
				ServerURL: v.GetString("llm.ollama.server_url"),
				Model:     v.GetString("llm.ollama.model"),
			},
		},
		Transcript: TranscriptConfig{
			Strategy:          strings.ToLower(v.GetString("transcript.strategy")),
			Languages:         v.GetStringSlice("transcript.languages"),
			MinPastedChars:    v.GetInt("transcript.min_pasted_chars"),
			YouTubeAPIKey:     v.GetString("transcript.youtube_api_key"),
			OAuthToken:        v.GetString("transcript.oauth_token"),
			RequestsPerSecond: v.GetFloat64("transcript.requests_per_second"),
			Timeout:           v.GetDuration("transcript.timeout"),
			Proxy: ProxyConfig{
				URL:    v.GetString("transcript.proxy.url"),
				APIKey: v.GetString("transcript.proxy.api_key"),
			},
		},
		Session: SessionConfig{
			Secret: v.GetString("session.secret"),
			TTL:    v.GetDuration("session.ttl"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		CacheTTLs: CacheTTLConfig{
			Quiz: v.GetString("cache_ttls.quiz"),
		},
	}
}

// ParseTTLStringOrDefault parses a duration string such as "24h", falling
// back to defaultTTL when the string is empty or malformed.
func ParseTTLStringOrDefault(ttlStr string, defaultTTL time.Duration) time.Duration {
	if ttlStr == "" {
		return defaultTTL
	}
	d, err := time.ParseDuration(ttlStr)
	if err != nil || d <= 0 {
		return defaultTTL
	}
	return d
}
