package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`

	Upload struct {
		MaxBytes int64  `yaml:"maxBytes"`
		TempDir  string `yaml:"tempDir"`
	} `yaml:"upload"`

	Provider struct {
		APIKey              string `yaml:"apiKey"`
		BaseURL             string `yaml:"baseURL"`
		TranscriptionModel  string `yaml:"transcriptionModel"`
		ClassificationModel string `yaml:"classificationModel"`
		TimeoutSeconds      int    `yaml:"timeoutSeconds"`
	} `yaml:"provider"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"`
	} `yaml:"rateLimit"`

	Retention struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"retention"`
}

// Load reads the yaml config (if present) and applies environment overrides
// on top, so the service can run from env alone in a container.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 10000
	cfg.CORS.AllowedOrigins = []string{
		"http://localhost:5173",
		"http://127.0.0.1:5173",
		"http://127.0.0.1:5500",
	}
	cfg.Upload.MaxBytes = 10 << 20
	cfg.Provider.BaseURL = "https://api.groq.com/openai/v1"
	cfg.Provider.TranscriptionModel = "whisper-large-v3-turbo"
	cfg.Provider.ClassificationModel = "openai/gpt-oss-120b"
	cfg.Provider.TimeoutSeconds = 60
	cfg.RateLimit.Capacity = 30
	cfg.RateLimit.RefillRate = 1
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("GROQ_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.Upload.MaxBytes = n
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.CORS.AllowedOrigins = origins
		}
	}
	// The deployed frontend passes its own URL as one extra origin.
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, v)
	}
}

// ProviderTimeout is the per-call deadline for provider requests.
func (c *Config) ProviderTimeout() time.Duration {
	if c.Provider.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Provider.TimeoutSeconds) * time.Second
}
