package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gookit/validate"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type StoreConfig struct {
	Driver    string `mapstructure:"driver" validate:"required|in:sqlite,file,memory"`
	Path      string `mapstructure:"path"`
	CacheSize int    `mapstructure:"cacheSize" validate:"min:0"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,disabled"`
}

type PolicyConfig struct {
	MinLaunches        uint64        `mapstructure:"minLaunches"`
	MinVersionLaunches uint64        `mapstructure:"minVersionLaunches"`
	MinAge             time.Duration `mapstructure:"minAge"`
	RemindAfter        time.Duration `mapstructure:"remindAfter"`
}

type PromptConfig struct {
	Title         string `mapstructure:"title"`
	Message       string `mapstructure:"message"`
	RateButton    string `mapstructure:"rateButton"`
	LaterButton   string `mapstructure:"laterButton"`
	DeclineButton string `mapstructure:"declineButton"`
}

type Config struct {
	Path        string
	AppID       string       `mapstructure:"appId" validate:"required"`
	AppName     string       `mapstructure:"appName"`
	Language    string       `mapstructure:"language" validate:"required"`
	VersionCode *int32       `mapstructure:"versionCode"`
	Store       StoreConfig  `mapstructure:"store"`
	Logger      LoggerConfig `mapstructure:"logger"`
	Policy      PolicyConfig `mapstructure:"policy"`
	Prompt      PromptConfig `mapstructure:"prompt"`
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"app-id":       "appId",
	"app-name":     "appName",
	"language":     "language",
	"version-code": "versionCode",
	"store":        "store.driver",
	"db":           "store.path",
	"log-level":    "logger.level",
}

// Load reads the optional YAML file at path, then environment variables,
// then any flag in flags that was set explicitly, and validates the result.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("language", "en")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "appirater.db")
	v.SetDefault("logger.level", "warn")

	v.BindEnv("appId", "APPIRATER_APP_ID")
	v.BindEnv("appName", "APPIRATER_APP_NAME")
	v.BindEnv("language", "APPIRATER_LANGUAGE")
	v.BindEnv("versionCode", "APPIRATER_VERSION_CODE")
	v.BindEnv("store.driver", "APPIRATER_STORE")
	v.BindEnv("store.path", "APPIRATER_DB")
	v.BindEnv("logger.level", "APPIRATER_LOG_LEVEL")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		flags.Visit(func(f *pflag.Flag) {
			if key, ok := flagKeys[f.Name]; ok {
				v.Set(key, f.Value.String())
			}
		})
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	conf.Path = path
	conf.Logger.Level = strings.ToLower(conf.Logger.Level)

	if err := Validate(&conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate checks struct tags and the cross-field rules.
func Validate(conf *Config) error {
	v := validate.Struct(conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %w", v.Errors)
	}
	if conf.Store.Driver != "memory" && conf.Store.Path == "" {
		return fmt.Errorf("invalid config: store.path is required for the %s store", conf.Store.Driver)
	}
	return nil
}
