package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	processtreebuilder "github.com/Wandalen/wProcessTreeWindows/pkg/processtree/builder"
)

type Config struct {
	MaxTreeDepth          int           `mapstructure:"maxTreeDepth"`
	CpuSampleCacheEnabled bool          `mapstructure:"cpuSampleCacheEnabled"`
	CpuSampleCacheSize    int           `mapstructure:"cpuSampleCacheSize"`
	CpuSampleCacheTTL     time.Duration `mapstructure:"cpuSampleCacheTTL"`
	EnablePrometheus      bool          `mapstructure:"prometheusExporterEnabled"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.SetDefault("maxTreeDepth", processtreebuilder.DefaultMaxTreeDepth)
	viper.SetDefault("cpuSampleCacheSize", 1024)
	viper.SetDefault("cpuSampleCacheTTL", 30*time.Second)

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return Config{}, err
	}

	var config Config
	err = viper.Unmarshal(&config)
	return config, err
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs error
	if c.MaxTreeDepth <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("maxTreeDepth must be positive, got %d", c.MaxTreeDepth))
	}
	if c.CpuSampleCacheEnabled {
		if c.CpuSampleCacheSize <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("cpuSampleCacheSize must be positive, got %d", c.CpuSampleCacheSize))
		}
		if c.CpuSampleCacheTTL <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("cpuSampleCacheTTL must be positive, got %s", c.CpuSampleCacheTTL))
		}
	}
	return errs
}
