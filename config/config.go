package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the default prefix for environment overrides, e.g. EFFECTPIPE_PROCESSOR_WORKERS.
const EnvPrefix = "EFFECTPIPE"

// Config holds the settings of a processor and its logger.
type Config struct {
	Processor Processor `yaml:"processor" envconfig:"PROCESSOR"`
	Log       Log       `yaml:"log" envconfig:"LOG"`
}

// Processor sizes batch execution.
type Processor struct {
	Workers     int  `yaml:"workers" envconfig:"WORKERS"`
	BufferSize  int  `yaml:"buffer_size" envconfig:"BUFFER_SIZE"`
	StableOrder bool `yaml:"stable_order" envconfig:"STABLE_ORDER"`
}

// Log configures the zap logger.
type Log struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Encoding string `yaml:"encoding" envconfig:"ENCODING"` // json | console
}

func Default() Config {
	return Config{
		Processor: Processor{
			Workers:    1,
			BufferSize: 1,
		},
		Log: Log{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// FromEnv overlays variables named <prefix>_<KEY> onto base. Unset variables keep base values.
func FromEnv(prefix string, base Config) (Config, error) {
	cfg := base
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate normalises sizes and rejects unknown log settings.
func (c *Config) Validate() error {
	if c.Processor.Workers <= 0 {
		c.Processor.Workers = 1
	}
	if c.Processor.BufferSize <= 0 {
		c.Processor.BufferSize = 1
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch c.Log.Encoding {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid log encoding %q", c.Log.Encoding)
	}
	return nil
}

func (l Log) level() (zapcore.Level, error) {
	if l.Level == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(strings.ToLower(l.Level))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

// Build creates a zap logger writing to stderr.
func (l Log) Build() (*zap.Logger, error) {
	level, err := l.level()
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if l.Encoding == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
