// Package config loads application settings from a YAML file and the
// environment, environment winning.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/prasetio/kosakata/pkg/priority"
)

type Config struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	DBPath   string `yaml:"db_path" env:"DB_PATH" env-default:"kosakata.db"`
	UserID   int64  `yaml:"user_id" env:"USER_ID" env-default:"1"`

	DailyGoal int `yaml:"daily_goal" env:"DAILY_GOAL" env-default:"10"`

	Workers   int `yaml:"workers" env:"WORKERS" env-default:"4"`
	BatchSize int `yaml:"batch_size" env:"BATCH_SIZE" env-default:"50"`

	MinPhraseLen int `yaml:"min_phrase_len" env:"MIN_PHRASE_LEN" env-default:"2"`
	MaxPhraseLen int `yaml:"max_phrase_len" env:"MAX_PHRASE_LEN" env-default:"5"`

	HTTPTimeout time.Duration `yaml:"http_timeout" env:"HTTP_TIMEOUT" env-default:"30s"`

	TranslateLimit    int           `yaml:"translate_limit" env:"TRANSLATE_LIMIT" env-default:"50"`
	TranslateThrottle time.Duration `yaml:"translate_throttle" env:"TRANSLATE_THROTTLE" env-default:"200ms"`

	FrequencyWeight  float64 `yaml:"frequency_weight" env:"FREQUENCY_WEIGHT" env-default:"0.4"`
	DifficultyWeight float64 `yaml:"difficulty_weight" env:"DIFFICULTY_WEIGHT" env-default:"0.2"`
	StatusWeight     float64 `yaml:"status_weight" env:"STATUS_WEIGHT" env-default:"0.3"`
	AccuracyWeight   float64 `yaml:"accuracy_weight" env:"ACCURACY_WEIGHT" env-default:"0.1"`
}

// MustLoad reads the config file (optional) plus the environment and exits
// on any error, including invalid values.
func MustLoad(configPath string) Config {
	var cfg Config
	var err error
	if configPath != "" {
		err = cleanenv.ReadConfig(configPath, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Fatalf("cannot read config %s: %s", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}
	return cfg
}

// Validate rejects values the rest of the program cannot work with.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must be set")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.DailyGoal <= 0 {
		return fmt.Errorf("daily_goal must be positive, got %d", c.DailyGoal)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.MinPhraseLen < 2 || c.MaxPhraseLen < c.MinPhraseLen {
		return fmt.Errorf("phrase length bounds invalid: %d..%d", c.MinPhraseLen, c.MaxPhraseLen)
	}
	sum := c.FrequencyWeight + c.DifficultyWeight + c.StatusWeight + c.AccuracyWeight
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("priority weights must sum to 1.0, got %g", sum)
	}
	return nil
}

// Weights converts the configured weights into the priority engine's form.
func (c Config) Weights() priority.Weights {
	return priority.Weights{
		Frequency:  c.FrequencyWeight,
		Difficulty: c.DifficultyWeight,
		Status:     c.StatusWeight,
		Accuracy:   c.AccuracyWeight,
	}
}
