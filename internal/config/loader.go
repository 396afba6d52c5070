package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment overrides, also read from a .env file in the working directory
const (
	EnvDBPassword  = "EMPSCORE_DB_PASSWORD"
	EnvDBDSN       = "EMPSCORE_DB_DSN"
	EnvRedisAddr   = "EMPSCORE_REDIS_ADDR"
	EnvRabbitMQURL = "EMPSCORE_RABBITMQ_URL"
)

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'empscore config init' to create)", expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Parse TOML
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	// Expand paths in config
	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads config or exits with error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// loadDotEnv loads .env when present. Variables already set win.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load .env: %w", err)
}

// applyEnv overrides secrets and endpoints from the environment
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvDBDSN); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv(EnvRabbitMQURL); v != "" {
		c.RabbitMQ.URL = v
	}
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	c.Output.ScoreFolder, err = expandPath(c.Output.ScoreFolder)
	if err != nil {
		return err
	}

	c.Output.DataFolder, err = expandPath(c.Output.DataFolder)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Database validation
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.path is required for sqlite"))
		}
	case "mysql":
		if c.Database.DSN == "" {
			if c.Database.Host == "" || c.Database.Name == "" {
				errs = append(errs, errors.New("database.host and database.name are required for mysql"))
			}
			if c.Database.Port < 1 || c.Database.Port > 65535 {
				errs = append(errs, errors.New("database.port must be between 1 and 65535"))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver must be 'sqlite' or 'mysql', got '%s'", c.Database.Driver))
	}

	// Source validation
	for name, table := range c.Source.tables() {
		if table == "" {
			errs = append(errs, fmt.Errorf("source.%s is required", name))
		}
	}

	// Scoring validation
	if c.Scoring.ActiveProfileDays < 0 {
		errs = append(errs, errors.New("scoring.active_profile_days must not be negative"))
	}
	if c.Scoring.CertTrendDays < 1 {
		errs = append(errs, errors.New("scoring.cert_trend_days must be at least 1"))
	}
	if c.Scoring.ValidCertYears < 0 {
		errs = append(errs, errors.New("scoring.valid_cert_years must not be negative"))
	}
	if len(c.Scoring.InterviewStatuses) == 0 {
		errs = append(errs, errors.New("scoring.interview_statuses must not be empty"))
	}
	if c.Scoring.RequestedBy == "" {
		errs = append(errs, errors.New("scoring.requested_by is required"))
	}

	// Output validation
	if c.Output.WriteFiles && c.Output.ScoreFolder == "" {
		errs = append(errs, errors.New("output.score_folder is required when write_files is set"))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn or error, got '%s'", c.Logging.Level))
	}

	// Redis validation
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("redis.addr is required when redis is enabled"))
		}
		if c.Redis.LockTTLMinutes < 1 {
			errs = append(errs, errors.New("redis.lock_ttl_minutes must be at least 1"))
		}
	}

	// RabbitMQ validation
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		errs = append(errs, errors.New("rabbitmq.url is required when rabbitmq is enabled"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

func (s SourceConfig) tables() map[string]string {
	return map[string]string{
		"personal_info":    s.PersonalInfo,
		"work_info":        s.WorkInfo,
		"technology_stack": s.TechnologyStack,
		"certificates":     s.Certificates,
		"education":        s.Education,
		"interviews":       s.Interviews,
		"offers":           s.Offers,
		"referrals":        s.Referrals,
		"reportings":       s.Reportings,
		"score_meta":       s.ScoreMeta,
	}
}

// EnsureDirectories creates the database and output directories
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Output.ScoreFolder, c.Output.DataFolder}
	if c.Database.Driver == "sqlite" {
		dirs = append(dirs, filepath.Dir(c.Database.Path))
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
