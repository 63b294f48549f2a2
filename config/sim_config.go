package config

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Gthulhu/schedsim/domain"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Console  bool   `mapstructure:"console"`
	FilePath string `mapstructure:"file_path"`
}

type MongoDBConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Port     string `mapstructure:"port"`
	Host     string `mapstructure:"host"`
}

// URI builds the connection string for the configured server
func (c MongoDBConfig) URI() string {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port == "" {
		port = "27017"
	}
	if c.User == "" {
		return "mongodb://" + host + ":" + port
	}
	return "mongodb://" + c.User + ":" + c.Password + "@" + host + ":" + port
}

type CacheConfig struct {
	Enable     bool `mapstructure:"enable"`
	TTLSeconds int  `mapstructure:"ttl_seconds"`
}

type TracingConfig struct {
	Enable      bool   `mapstructure:"enable"`
	ServiceName string `mapstructure:"service_name"`
	OutputFile  string `mapstructure:"output_file"`
}

type OutputConfig struct {
	// Format is one of lines, json or yaml
	Format string `mapstructure:"format"`
}

type SimulationConfig struct {
	// MaxQueueID rejects processes whose queue id is at or above it
	MaxQueueID int `mapstructure:"max_queue_id"`
}

type SimConfig struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	MongoDB MongoDBConfig `mapstructure:"mongodb"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Output  OutputConfig  `mapstructure:"output"`

	Simulation SimulationConfig `mapstructure:"simulation"`
}

var (
	simCfg *SimConfig
)

func GetConfig() *SimConfig {
	return simCfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("mongodb.database", "schedsim")
	v.SetDefault("cache.enable", true)
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("tracing.service_name", "schedsim")
	v.SetDefault("output.format", "lines")
	v.SetDefault("simulation.max_queue_id", domain.DefaultMaxQueueID)
}

// InitSimConfig reads configName (toml) from configPath or the repository config
// directory. Every key can be overridden with a SCHEDSIM_ prefixed env var,
// e.g. SCHEDSIM_MONGODB_HOST.
func InitSimConfig(configName string, configPath string) (SimConfig, error) {
	var cfg SimConfig
	v := viper.New()
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	if configName == "" {
		configName = "sim_config"
	}
	v.AddConfigPath(GetAbsPath("config"))
	v.SetConfigName(strings.TrimSuffix(configName, ".toml"))
	v.SetConfigType("toml")
	v.SetEnvPrefix("SCHEDSIM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	err := v.ReadInConfig()
	if err != nil {
		return cfg, err
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return cfg, err
	}
	simCfg = &cfg
	return cfg, nil
}

// DefaultConfig returns the built-in settings, used when no config file is given
func DefaultConfig() SimConfig {
	var cfg SimConfig
	v := viper.New()
	setDefaults(v)
	_ = v.Unmarshal(&cfg)
	return cfg
}

// GetAbsPath returns the absolute path by joining the given paths with the project root directory
func GetAbsPath(paths ...string) string {
	_, filePath, _, _ := runtime.Caller(1)
	basePath := filepath.Dir(filePath)
	rootPath := filepath.Join(basePath, "..")
	return filepath.Join(rootPath, filepath.Join(paths...))
}
