package config

import (
	"reflect"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix = "PKGDIRS_"

	FormatSpec = "spec"
	FormatJSON = "json"
)

type Config struct {
	Key      string `koanf:"key" short:"k" description:"dotted key of the directory list inside the document"`
	Format   string `koanf:"format" short:"f" description:"output format of the render command: spec or json"`
	LogLevel string `koanf:"log-level" short:"l" description:"log level: trace, debug, info, warn or error"`
}

func Default() Config {
	return Config{
		Key:      "dirs",
		Format:   FormatSpec,
		LogLevel: zerolog.WarnLevel.String(),
	}
}

func (c *Config) Validate() error {
	c.Key = strings.TrimSpace(c.Key)
	if c.Key == "" {
		return errors.New("key must not be empty")
	}

	switch c.Format {
	case FormatSpec, FormatJSON:
	default:
		return errors.Errorf("invalid format %q: expected %s or %s", c.Format, FormatSpec, FormatJSON)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	return nil
}

// Level returns the parsed log level or zerolog.NoLevel for invalid configs.
func (c Config) Level() zerolog.Level {
	level, _ := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	return level
}

// RegisterFlags adds a flag for every koanf tagged string field of defaults.
func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	v := reflect.ValueOf(defaults)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("koanf")
		if name == "" || name == "-" || field.Type.Kind() != reflect.String {
			continue
		}
		fs.StringP(name, field.Tag.Get("short"), v.Field(i).String(), field.Tag.Get("description"))
	}
}

// Load merges defaults, PKGDIRS_* environment variables and the command
// line flags, in that order of precedence, and validates the result.
func Load(fs *pflag.FlagSet, defaults Config) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return Config{}, errors.Wrap(err, "failed to load defaults")
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
	}), nil)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to load environment")
	}

	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return Config{}, errors.Wrap(err, "failed to load flags")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
