package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Testeur1337/myPomodoro/internal/db"
	"github.com/Testeur1337/myPomodoro/internal/hierarchy"
)

// EnvPrefix prefixes environment overrides, e.g. POMODORO_SERVER_ADDR.
const EnvPrefix = "POMODORO"

// Config holds application settings
type Config struct {
	Data        DataConfig        `yaml:"data" mapstructure:"data"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Hierarchy   HierarchyConfig   `yaml:"hierarchy" mapstructure:"hierarchy"`
	Planner     PlannerConfig     `yaml:"planner" mapstructure:"planner"`
	Maintenance MaintenanceConfig `yaml:"maintenance" mapstructure:"maintenance"`

	// Logging configuration
	LogLevel   string `yaml:"log_level" mapstructure:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" mapstructure:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" mapstructure:"log_console"` // Enable console logging
	LogFormat  string `yaml:"log_format" mapstructure:"log_format"`   // text or json
}

// DataConfig selects the document store.
type DataConfig struct {
	Driver    string `yaml:"driver" mapstructure:"driver"` // sqlite or postgres
	DSN       string `yaml:"dsn" mapstructure:"dsn"`       // file path for sqlite, URL for postgres
	QueueSize int    `yaml:"queue_size" mapstructure:"queue_size"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

type HierarchyConfig struct {
	// ConflictPolicy decides what happens when a focus session names a
	// project or goal that differs from its topic's: reject or override.
	ConflictPolicy string `yaml:"conflict_policy" mapstructure:"conflict_policy"`
}

type PlannerConfig struct {
	// Timezone decides which calendar date "today" is. Empty means local time.
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

type MaintenanceConfig struct {
	RepairOnStart    bool   `yaml:"repair_on_start" mapstructure:"repair_on_start"`
	RepairSchedule   string `yaml:"repair_schedule" mapstructure:"repair_schedule"` // cron spec, empty disables
	BackupSchedule   string `yaml:"backup_schedule" mapstructure:"backup_schedule"` // cron spec, empty disables
	BackupDir        string `yaml:"backup_dir" mapstructure:"backup_dir"`
	BackupPassphrase string `yaml:"backup_passphrase,omitempty" mapstructure:"backup_passphrase"`
	BackupKeep       int    `yaml:"backup_keep" mapstructure:"backup_keep"`
}

// Dir returns the application directory (~/.mypomodoro)
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".mypomodoro"
	}
	return filepath.Join(home, ".mypomodoro")
}

// DefaultPath returns the default config file path
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		Data: DataConfig{
			Driver:    string(db.DriverSQLite),
			DSN:       filepath.Join(dir, "pomodoro.db"),
			QueueSize: 64,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Hierarchy: HierarchyConfig{
			ConflictPolicy: hierarchy.PolicyReject.String(),
		},
		Maintenance: MaintenanceConfig{
			RepairOnStart:  true,
			RepairSchedule: "0 3 * * *",
			BackupDir:      filepath.Join(dir, "backups"),
			BackupKeep:     7,
		},
		LogLevel:   "INFO",
		LogFile:    filepath.Join(dir, "logs", "pomodoro.log"),
		LogConsole: false,
		LogFormat:  "text",
	}
}

// Load reads the config file at path (DefaultPath when empty) over the
// defaults, then applies POMODORO_* environment overrides. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Seeding viper with the defaults makes every key known, which is what
	// lets AutomaticEnv resolve overrides for keys absent from the file.
	seed, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(seed)); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path (DefaultPath when empty)
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := db.ParseDriver(c.Data.Driver); err != nil {
		errs = append(errs, err)
	}
	if c.Data.DSN == "" {
		errs = append(errs, errors.New("data.dsn must not be empty"))
	}
	if _, err := hierarchy.ParsePolicy(c.Hierarchy.ConflictPolicy); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	for key, spec := range map[string]string{
		"maintenance.repair_schedule": c.Maintenance.RepairSchedule,
		"maintenance.backup_schedule": c.Maintenance.BackupSchedule,
	} {
		if spec == "" {
			continue
		}
		if _, err := cron.ParseStandard(spec); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	if c.Maintenance.BackupSchedule != "" && c.Maintenance.BackupDir == "" {
		errs = append(errs, errors.New("maintenance.backup_dir is required when backups are scheduled"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log_format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Location returns the time zone used to decide today's date.
func (c *Config) Location() (*time.Location, error) {
	if c.Planner.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Planner.Timezone)
	if err != nil {
		return nil, fmt.Errorf("planner.timezone: %w", err)
	}
	return loc, nil
}

// Policy returns the configured hierarchy conflict policy.
func (c *Config) Policy() hierarchy.Policy {
	p, err := hierarchy.ParsePolicy(c.Hierarchy.ConflictPolicy)
	if err != nil {
		return hierarchy.PolicyReject
	}
	return p
}
