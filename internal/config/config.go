package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConf struct {
	Brokers        []string `mapstructure:"brokers"`
	ThumbnailTopic string   `mapstructure:"thumbnail_topic"`
	WelcomeTopic   string   `mapstructure:"welcome_topic"`
	ThumbnailGroup string   `mapstructure:"thumbnail_group"`
	WelcomeGroup   string   `mapstructure:"welcome_group"`
}

type StorageConf struct {
	Root string `mapstructure:"root"`
}

type SessionConf struct {
	TTLHours int `mapstructure:"ttl_hours"`
}

type RateLimitConf struct {
	Limit         int `mapstructure:"limit"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

type Config struct {
	App       AppConf       `mapstructure:"app"`
	Mongo     MongoConf     `mapstructure:"mongodb"`
	Redis     RedisConf     `mapstructure:"redis"`
	Kafka     KafkaConf     `mapstructure:"kafka"`
	Storage   StorageConf   `mapstructure:"storage"`
	Session   SessionConf   `mapstructure:"session"`
	RateLimit RateLimitConf `mapstructure:"rate_limit"`

	// derived
	ShutdownTimeout time.Duration
	SessionTTL      time.Duration
	RateWindow      time.Duration
}

// Load reads the YAML config at path, applying environment overrides
// (a .env file is honored when present).
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.App.Port == 0 {
		cfg.App.Port = 5000
	}
	if cfg.App.ShutdownSecond == 0 {
		cfg.App.ShutdownSecond = 15
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "files_manager"
	}
	if cfg.Storage.Root == "" {
		cfg.Storage.Root = "/tmp/files_manager"
	}
	if cfg.Session.TTLHours == 0 {
		cfg.Session.TTLHours = 24
	}
	if cfg.Kafka.ThumbnailTopic == "" {
		cfg.Kafka.ThumbnailTopic = "files.thumbnails"
	}
	if cfg.Kafka.WelcomeTopic == "" {
		cfg.Kafka.WelcomeTopic = "users.welcome"
	}
	// Separate groups per topic so a rebalance on one queue never stalls
	// the other.
	if cfg.Kafka.ThumbnailGroup == "" {
		cfg.Kafka.ThumbnailGroup = "files-worker-thumbnails"
	}
	if cfg.Kafka.WelcomeGroup == "" {
		cfg.Kafka.WelcomeGroup = "files-worker-welcome"
	}
	if cfg.RateLimit.Limit == 0 {
		cfg.RateLimit.Limit = 10
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.SessionTTL = time.Duration(cfg.Session.TTLHours) * time.Hour
	cfg.RateWindow = time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	return &cfg, nil
}
