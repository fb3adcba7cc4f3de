package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Training  TrainingConfig  `mapstructure:"training"`
	Database  DatabaseConfig  `mapstructure:"database"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            string `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// ArtifactsConfig locates the trained model and its encoders
type ArtifactsConfig struct {
	ModelPath    string `mapstructure:"model_path"`
	EncodersPath string `mapstructure:"encoders_path"`
}

type TrainingConfig struct {
	DatasetPath string  `mapstructure:"dataset_path"`
	TestSize    float64 `mapstructure:"test_size"`
	Seed        int64   `mapstructure:"seed"`
}

// DatabaseConfig holds the optional prediction log store. An empty URL
// disables persistence.
type DatabaseConfig struct {
	URL            string `mapstructure:"url"`
	ConnectTimeout int    `mapstructure:"connect_timeout"` // milliseconds
}

type CORSConfig struct {
	AllowCredentials bool `mapstructure:"allow_credentials"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
