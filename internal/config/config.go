package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	RedisAddress    string
	ProductCacheTTL time.Duration
	JWTSecret       string
	LLMBaseURL      string
	LLMAPIKey       string
	LLMModel        string
	ChatMaxRounds   int
	ChatTimeout     time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	LogLevel        string
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultProductCacheTTL = 5 * time.Minute
	defaultLLMBaseURL      = "https://api.openai.com/v1"
	defaultLLMModel        = "gpt-5-nano"
	defaultChatMaxRounds   = 10
	defaultChatTimeout     = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultEnvFile         = ".env"
	defaultLogLevel        = "info"
)

// Load parses configuration from flags, environment variables and an optional env file.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

// withEnvFile layers values from ENV_FILE (or ./.env) under the process environment.
func withEnvFile(lookup envLookup) (envLookup, error) {
	path, explicit := lookup("ENV_FILE")
	if !explicit || path == "" {
		path, explicit = defaultEnvFile, false
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	lookup, err := withEnvFile(lookup)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		RedisAddress:    getString(lookup, "REDIS_ADDR", ""),
		ProductCacheTTL: getDuration(lookup, "PRODUCT_CACHE_TTL", defaultProductCacheTTL),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		LLMBaseURL:      getString(lookup, "LLM_BASE_URL", defaultLLMBaseURL),
		LLMAPIKey:       getString(lookup, "LLM_API_KEY", ""),
		LLMModel:        getString(lookup, "LLM_MODEL", defaultLLMModel),
		ChatMaxRounds:   getInt(lookup, "CHAT_MAX_ROUNDS", defaultChatMaxRounds),
		ChatTimeout:     getDuration(lookup, "CHAT_TIMEOUT", defaultChatTimeout),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	flags := flag.NewFlagSet("foodorder", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		cacheTTLStr        = cfg.ProductCacheTTL.String()
		chatTimeoutStr     = cfg.ChatTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		corsOrigins        = getString(lookup, "CORS_ORIGINS", "")
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	flags.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the product cache")
	flags.StringVar(&cacheTTLStr, "product-cache-ttl", cacheTTLStr, "Product cache entry lifetime")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for verifying auth tokens")
	flags.StringVar(&cfg.LLMBaseURL, "llm-url", cfg.LLMBaseURL, "Chat completions base URL")
	flags.StringVar(&cfg.LLMModel, "llm-model", cfg.LLMModel, "Chat completions model name")
	flags.IntVar(&cfg.ChatMaxRounds, "chat-max-rounds", cfg.ChatMaxRounds, "Maximum tool rounds per chat turn")
	flags.StringVar(&chatTimeoutStr, "chat-timeout", chatTimeoutStr, "Deadline for a single chat turn")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level (debug, info, warn, error)")
	flags.StringVar(&corsOrigins, "cors-origins", corsOrigins, "Comma separated list of allowed CORS origins")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.ProductCacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid product cache ttl: %w", err)
	}

	if cfg.ChatTimeout, err = time.ParseDuration(chatTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid chat timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.CORSOrigins = splitList(corsOrigins)

	if cfg.ProductCacheTTL <= 0 {
		cfg.ProductCacheTTL = defaultProductCacheTTL
	}

	if cfg.ChatMaxRounds <= 0 {
		cfg.ChatMaxRounds = defaultChatMaxRounds
	}

	if cfg.ChatTimeout <= 0 {
		cfg.ChatTimeout = defaultChatTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
