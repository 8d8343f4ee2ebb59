package models

// MConfig Structure
type MConfig struct {
	Name     string          `yaml:"name"`
	Host     string          `yaml:"host"`
	Port     int             `yaml:"port"`
	LogLevel string          `yaml:"log_level"`
	Dataset  MDatasetConfig  `yaml:"dataset"`
	Storage  MStorageConfig  `yaml:"storage"`
	Session  MSessionConfig  `yaml:"session"`
	Forecast MForecastConfig `yaml:"forecast"`
	Query    MQueryConfig    `yaml:"query"`
}

type MDatasetConfig struct {
	CSVPath         string  `yaml:"csv_path"`
	BadRowThreshold float64 `yaml:"bad_row_threshold"` // fraction of rejected rows tolerated before load fails
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"` // "sqlite" or "postgres"
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RetentionDays      int    `yaml:"retention_days"` // query-log retention
}

type MSessionConfig struct {
	TTLMinutes  int `yaml:"ttl_minutes"`
	MaxMessages int `yaml:"max_messages"`
}

type MForecastConfig struct {
	WindowSize      int     `yaml:"window_size"`
	DefaultHorizon  int     `yaml:"default_horizon"`
	ConfidenceLevel float64 `yaml:"confidence_level"`
	TimeoutSeconds  int     `yaml:"timeout_seconds"`
}

type MQueryConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}
