// Package config
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Address            string        `validate:"required"`
	Mode               string        `validate:"oneof=serve stream snapshot"`
	Interval           time.Duration `validate:"gt=0"`
	LogLevel           string        `validate:"oneof=debug info warn warning error"`
	LogFormat          string        `validate:"oneof=text json"`
	ProcRoot           string        `validate:"required"`
	CollectTimeout     time.Duration `validate:"gt=0"`
	CollectConcurrency int           `validate:"gte=0"`
	JWTSecret          string
	AllowedOrigins     []string
	OutputFormat       string `validate:"oneof=json yaml"`
}

const (
	ModeServe    = "serve"
	ModeStream   = "stream"
	ModeSnapshot = "snapshot"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var validate = validator.New()

func Load() *Config {
	godotenv.Load()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
	}

	mode := os.Getenv("STATUS_MODE")
	if mode == "" {
		mode = ModeServe
	}

	interval := 10 * time.Second
	if raw := os.Getenv("SCRAPE_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	procRoot := os.Getenv("PROC_ROOT")
	if procRoot == "" {
		procRoot = "/proc"
	}

	timeout := 5 * time.Second
	if raw := os.Getenv("COLLECT_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	concurrency := 0
	if raw := os.Getenv("COLLECT_CONCURRENCY"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			concurrency = n
		}
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	output := os.Getenv("OUTPUT_FORMAT")
	if output == "" {
		output = FormatJSON
	}

	return &Config{
		Address:            addr,
		Mode:               mode,
		Interval:           interval,
		LogLevel:           strings.ToLower(logLevel),
		LogFormat:          strings.ToLower(logFormat),
		ProcRoot:           procRoot,
		CollectTimeout:     timeout,
		CollectConcurrency: concurrency,
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AllowedOrigins:     origins,
		OutputFormat:       strings.ToLower(output),
	}
}

func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	if verrs, ok := err.(validator.ValidationErrors); ok {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}

	return fmt.Errorf("invalid config: %w", err)
}
