package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gorm.io/gorm/logger"
)

// EnvPrefix marks environment variables read as configuration. A double
// underscore separates nesting levels: DISPATCH_DATABASE__HOST sets
// database.host.
const EnvPrefix = "DISPATCH_"

type Config struct {
	HTTP     HTTPConfig     `json:"http"`
	Database DatabaseConfig `json:"database"`
	Dispatch DispatchConfig `json:"dispatch"`
	Jobs     JobsConfig     `json:"jobs"`
	AMQP     AMQPConfig     `json:"amqp"`
	Logging  LoggingConfig  `json:"logging"`
}

type HTTPConfig struct {
	Port                   string `json:"port"`
	ShutdownTimeoutSeconds int    `json:"shutdown_timeout_seconds"`
}

func (c *HTTPConfig) SetDefaults() {
	if c.Port == "" {
		c.Port = "3000"
	}
	if c.ShutdownTimeoutSeconds == 0 {
		c.ShutdownTimeoutSeconds = 10
	}
}

func (c HTTPConfig) Validate() error {
	if c.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("http.shutdown_timeout_seconds must not be negative")
	}
	return nil
}

func (c HTTPConfig) Address() string {
	return "0.0.0.0:" + c.Port
}

func (c HTTPConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	Host                   string `json:"host"`
	Port                   string `json:"port"`
	User                   string `json:"user"`
	Password               string `json:"password"`
	Name                   string `json:"name"`
	SSLMode                string `json:"sslmode"`
	MaxOpenConns           int    `json:"max_open_conns"`
	MaxIdleConns           int    `json:"max_idle_conns"`
	ConnMaxLifetimeSeconds int    `json:"conn_max_lifetime_seconds"`
	// LogLevel is gorm's log level: silent, error, warn or info.
	LogLevel string `json:"log_level"`
}

func (c *DatabaseConfig) SetDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == "" {
		c.Port = "5432"
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 20
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetimeSeconds == 0 {
		c.ConnMaxLifetimeSeconds = 300
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

func (c DatabaseConfig) Validate() error {
	var errList []error
	if c.User == "" {
		errList = append(errList, fmt.Errorf("database.user is required"))
	}
	if c.Name == "" {
		errList = append(errList, fmt.Errorf("database.name is required"))
	}
	if _, ok := gormLogLevels[c.LogLevel]; !ok {
		errList = append(errList, fmt.Errorf("unknown database.log_level %s", c.LogLevel))
	}
	return errors.Join(errList...)
}

func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

var gormLogLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
}

func (c DatabaseConfig) Options() postgres.Options {
	return postgres.Options{
		DSN:             c.DSN(),
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: time.Duration(c.ConnMaxLifetimeSeconds) * time.Second,
		LogLevel:        gormLogLevels[c.LogLevel],
	}
}

type DispatchConfig struct {
	// CandidateWindow is how many available drivers one assignment attempt
	// locks and hands to the selector.
	CandidateWindow int `json:"candidate_window"`
}

func (c *DispatchConfig) SetDefaults() {
	if c.CandidateWindow == 0 {
		c.CandidateWindow = commands.DefaultCandidateWindow
	}
}

func (c DispatchConfig) Validate() error {
	if c.CandidateWindow < 1 {
		return fmt.Errorf("dispatch.candidate_window must be at least 1")
	}
	return nil
}

type JobsConfig struct {
	PendingAssignment PendingAssignmentJobConfig `json:"pending_assignment"`
}

type PendingAssignmentJobConfig struct {
	Enabled   bool   `json:"enabled"`
	Schedule  string `json:"schedule"`
	BatchSize int    `json:"batch_size"`
}

func (c *PendingAssignmentJobConfig) SetDefaults() {
	if c.Schedule == "" {
		c.Schedule = jobs.DefaultPendingAssignmentSchedule
	}
	if c.BatchSize == 0 {
		c.BatchSize = commands.DefaultPendingBatchSize
	}
}

func (c PendingAssignmentJobConfig) Validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("jobs.pending_assignment.batch_size must be at least 1")
	}
	return nil
}

type AMQPConfig struct {
	Enabled  bool   `json:"enabled"`
	URL      string `json:"url"`
	Exchange string `json:"exchange"`
}

func (c *AMQPConfig) SetDefaults() {
	if c.Exchange == "" {
		c.Exchange = "dispatch.events"
	}
}

func (c AMQPConfig) Validate() error {
	if c.Enabled && c.URL == "" {
		return fmt.Errorf("amqp.url is required when amqp is enabled")
	}
	return nil
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level"`
	// Format is json or text.
	Format string `json:"format"`
}

func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
}

func (c LoggingConfig) Validate() error {
	var errList []error
	if _, ok := slogLevels[c.Level]; !ok {
		errList = append(errList, fmt.Errorf("unknown logging.level %s", c.Level))
	}
	if c.Format != "json" && c.Format != "text" {
		errList = append(errList, fmt.Errorf("unknown logging.format %s", c.Format))
	}
	return errors.Join(errList...)
}

func (c *Config) SetDefaults() {
	c.HTTP.SetDefaults()
	c.Database.SetDefaults()
	c.Dispatch.SetDefaults()
	c.Jobs.PendingAssignment.SetDefaults()
	c.AMQP.SetDefaults()
	c.Logging.SetDefaults()
}

func (c Config) Validate() error {
	return errors.Join(
		c.HTTP.Validate(),
		c.Database.Validate(),
		c.Dispatch.Validate(),
		c.Jobs.PendingAssignment.Validate(),
		c.AMQP.Validate(),
		c.Logging.Validate(),
	)
}

// LoadConfig reads an optional .env file, the optional config file at path
// (YAML or JSON) and finally DISPATCH_ environment variables, each layer
// overriding the previous one.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
