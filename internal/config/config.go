// Package config loads tempmon settings from defaults, a TOML file, the
// environment and command line flags, in increasing order of precedence.
package config

import (
	"os"
	"strings"
	"time"

	"codeberg.org/mutker/tempmon/internal/control"
	"codeberg.org/mutker/tempmon/internal/device"
	"codeberg.org/mutker/tempmon/internal/errors"
	"codeberg.org/mutker/tempmon/internal/history"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultPeriod             = 1
	DefaultScale              = "F"
	DefaultLogLevel           = LogLevelInfo
	DefaultEnvPrefix          = "TEMPMON"
	DefaultButtonPin          = "GPIO60"
	DefaultButtonPollInterval = 10 * time.Millisecond
	DefaultInputTimeout       = 10 * time.Millisecond
	DefaultChunkSize          = 128

	configName = "tempmon"
	configType = "toml"
	configDir  = "/etc"
)

// ErrHelp is returned by Load when -h or --help was given.
var ErrHelp = pflag.ErrHelp

type Config struct {
	Period   int64    `mapstructure:"period"`
	Scale    string   `mapstructure:"scale"`
	LogPath  string   `mapstructure:"log"`
	LogPad   bool     `mapstructure:"log_pad"`
	LogLevel LogLevel `mapstructure:"log_level"`
	PIDFile  string   `mapstructure:"pid_file"`

	Sensor  device.SensorConfig `mapstructure:"sensor"`
	Button  ButtonConfig        `mapstructure:"button"`
	Input   InputConfig         `mapstructure:"input"`
	History history.Config      `mapstructure:"history"`
}

type ButtonConfig struct {
	device.ButtonConfig `mapstructure:",squash"`
	PollInterval        time.Duration `mapstructure:"poll_interval"`
}

type InputConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	ChunkSize int           `mapstructure:"chunk_size"`
}

// Load parses args (without the program name) and merges them over the
// environment, the config file and the defaults.
func Load(args []string, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := options{
		configPath: os.Getenv(DefaultEnvPrefix + "_CONFIG"),
		envPrefix:  DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(&o)
	}

	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, errFactory.Wrap(errors.ErrInvalidArgument, err)
	}
	if flags.NArg() > 0 {
		return nil, errFactory.WithData(errors.ErrInvalidArgument, flags.Args())
	}

	if path, _ := flags.GetString("config"); path != "" {
		o.configPath = path
	}

	v := viper.New()
	setDefaults(v)

	if err := readConfigFile(v, o.configPath); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, flags); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("tempmon", pflag.ContinueOnError)
	flags.SortFlags = false

	flags.Int64("period", DefaultPeriod, "Seconds between samples")
	flags.String("scale", DefaultScale, "Temperature scale, F or C")
	flags.String("log", "", "Append records and commands to this file")
	flags.Bool("log-pad", false, "Pad log records to 32 bytes")
	flags.String("log-level", string(DefaultLogLevel), "Log level (debug, info, warning, error)")
	flags.String("pid-file", "", "PID file path")
	flags.String("config", "", "Config file path")
	flags.String("sensor", device.SourceIIO, "Sensor source (iio, sim)")
	flags.String("button", device.SourceGPIO, "Button source (gpio, sim, none)")

	return flags
}

// flagKeys maps flag names onto config keys.
var flagKeys = map[string]string{
	"period":    "period",
	"scale":     "scale",
	"log":       "log",
	"log-pad":   "log_pad",
	"log-level": "log_level",
	"pid-file":  "pid_file",
	"sensor":    "sensor.source",
	"button":    "button.source",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	hist := history.DefaultConfig()

	v.SetDefault("period", DefaultPeriod)
	v.SetDefault("scale", DefaultScale)
	v.SetDefault("log", "")
	v.SetDefault("log_pad", false)
	v.SetDefault("log_level", string(DefaultLogLevel))
	v.SetDefault("pid_file", "")

	v.SetDefault("sensor.source", device.SourceIIO)
	v.SetDefault("sensor.path", device.DefaultIIOPath)
	v.SetDefault("sensor.full_scale", device.DefaultFullScale)
	v.SetDefault("sensor.sim_values", []int{})

	v.SetDefault("button.source", device.SourceGPIO)
	v.SetDefault("button.pin", DefaultButtonPin)
	v.SetDefault("button.path", "")
	v.SetDefault("button.poll_interval", DefaultButtonPollInterval)

	v.SetDefault("input.timeout", DefaultInputTimeout)
	v.SetDefault("input.chunk_size", DefaultChunkSize)

	v.SetDefault("history.enabled", hist.Enabled)
	v.SetDefault("history.db_path", hist.DBPath)
	v.SetDefault("history.batch_size", hist.BatchSize)
	v.SetDefault("history.batch_timeout", hist.BatchTimeout)
}

// readConfigFile reads path, or /etc/tempmon.toml when path is empty. Only
// the default file may be missing.
func readConfigFile(v *viper.Viper, path string) error {
	errFactory := errors.New()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(configType)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return errFactory.Wrap(errors.ErrReadConfig, err)
	}

	return nil
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	if !control.ValidPeriod(c.Period) {
		return errFactory.WithData(errors.ErrInvalidPeriod, c.Period)
	}
	if _, err := control.ParseScale(c.Scale); err != nil {
		return errFactory.WithData(errors.ErrInvalidScale, c.Scale)
	}
	if !c.LogLevel.IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	switch c.Sensor.Source {
	case device.SourceIIO, device.SourceSim:
	default:
		return errFactory.WithData(errors.ErrInvalidConfig, "sensor.source="+c.Sensor.Source)
	}
	switch c.Button.Source {
	case device.SourceGPIO, device.SourceSim, device.SourceNone:
	default:
		return errFactory.WithData(errors.ErrInvalidConfig, "button.source="+c.Button.Source)
	}

	if c.Button.PollInterval <= 0 || c.Input.Timeout <= 0 || c.Input.ChunkSize < 1 {
		return errFactory.WithData(errors.ErrInvalidConfig, struct {
			PollInterval time.Duration
			InputTimeout time.Duration
			ChunkSize    int
		}{c.Button.PollInterval, c.Input.Timeout, c.Input.ChunkSize})
	}

	return c.History.Validate()
}

// TemperatureScale returns the validated startup scale.
func (c *Config) TemperatureScale() control.Scale {
	scale, _ := control.ParseScale(c.Scale) //nolint:errcheck // validated by Load
	return scale
}
