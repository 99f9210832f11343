package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // computed after load, not read from file
	} `yaml:"server"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`

	DB struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		Database        string `yaml:"database"`
		Charset         string `yaml:"charset"`
		ParseTime       bool   `yaml:"parse_time"`
		DSN             string `yaml:"-"` // computed after load, not read from file
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // minutes
	} `yaml:"database"`

	Embedding struct {
		URL        string `yaml:"url"`
		APIKey     string `yaml:"api_key"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"embedding"`

	Match struct {
		RecommendTopK int `yaml:"recommend_top_k"` // results returned by /recommend
		FindTopK      int `yaml:"find_top_k"`      // results returned by /find
		PoolLimit     int `yaml:"pool_limit"`      // candidates scored per recommend request
	} `yaml:"match"`

	Team struct {
		MinUsers int `yaml:"min_users"` // minimum eligible users to run formation
	} `yaml:"team"`

	Cron struct {
		BackfillHour int `yaml:"backfill_hour"` // daily embedding backfill hour (0-23)
		BackfillMin  int `yaml:"backfill_min"`  // daily embedding backfill minute (0-59)
		Concurrency  int `yaml:"concurrency"`   // concurrent embedding rebuilds
	} `yaml:"cron"`

	Scheduler struct {
		CheckIntervalSec int `yaml:"check_interval_sec"`
		DefaultHour      int `yaml:"default_hour"`
		DefaultMinute    int `yaml:"default_minute"`
	} `yaml:"scheduler"`

	Debug struct {
		Enabled     bool `yaml:"enabled"`
		BackfillSec int  `yaml:"backfill_sec"` // backfill interval in debug mode, seconds
	} `yaml:"debug"`
}

func Load() *Config {
	// Load .env first; if it does not exist, system environment variables still apply.
	_ = godotenv.Load()

	var cfg Config

	if data, err := os.ReadFile("config.yaml"); err == nil {
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			log.Printf("Error loading config.yaml: %v, falling back to environment variables", err)
			return loadFromEnv()
		}
		log.Println("Loading configuration from config.yaml")

		cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

		// Secrets come from the environment, never from the yaml file.
		if envUsername := os.Getenv("DATABASE_USERNAME"); envUsername != "" {
			cfg.DB.Username = envUsername
		}
		if envPassword := os.Getenv("DATABASE_PASSWORD"); envPassword != "" {
			cfg.DB.Password = envPassword
		}
		if envAPIKey := os.Getenv("EMBEDDING_API_KEY"); envAPIKey != "" {
			cfg.Embedding.APIKey = envAPIKey
		}

		if cfg.DB.DSN == "" {
			if cfg.DB.Charset == "" {
				cfg.DB.Charset = "utf8mb4"
			}

			parseTime := ""
			if cfg.DB.ParseTime {
				parseTime = "&parseTime=true"
			}

			cfg.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s%s",
				cfg.DB.Username,
				cfg.DB.Password,
				cfg.DB.Host,
				cfg.DB.Port,
				cfg.DB.Database,
				cfg.DB.Charset,
				parseTime)
		}

		applyDefaults(&cfg)
		return &cfg
	}

	return loadFromEnv()
}

func loadFromEnv() *Config {
	// Minimal configuration when config.yaml is absent or broken.
	var cfg Config

	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	if username := os.Getenv("DATABASE_USERNAME"); username != "" {
		cfg.DB.Username = username
	}
	if password := os.Getenv("DATABASE_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	}

	if url := os.Getenv("EMBEDDING_URL"); url != "" {
		cfg.Embedding.URL = url
	}
	if apiKey := os.Getenv("EMBEDDING_API_KEY"); apiKey != "" {
		cfg.Embedding.APIKey = apiKey
	}

	applyDefaults(&cfg)
	log.Println("Configuration loaded from environment variables, some settings may be missing")
	return &cfg
}

// applyDefaults fills in tunables that must never be zero.
func applyDefaults(cfg *Config) {
	if cfg.Match.RecommendTopK <= 0 {
		cfg.Match.RecommendTopK = 8
	}
	if cfg.Match.FindTopK <= 0 {
		cfg.Match.FindTopK = 15
	}
	if cfg.Match.PoolLimit <= 0 {
		cfg.Match.PoolLimit = 50
	}
	if cfg.Team.MinUsers <= 0 {
		cfg.Team.MinUsers = 3
	}
	if cfg.Embedding.TimeoutSec <= 0 {
		cfg.Embedding.TimeoutSec = 10
	}
}
