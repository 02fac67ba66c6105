package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName      string
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		RollbarToken string
		API          APIConfig
		Session      SessionConfig
		Notify       NotifyConfig
		Watch        WatchConfig
	}

	APIConfig struct {
		BaseURL        string
		Timeout        time.Duration
		MaxConcurrency int
	}

	SessionConfig struct {
		Path string
	}

	NotifyConfig struct {
		Lifetime  time.Duration
		AssumeYes bool // answer yes to every confirmation (scripts)
	}

	WatchConfig struct {
		Schedule string
	}
)

var envAliases = []struct{ key, name string }{
	{"apiBaseURL", "API_BASE_URL"},
	{"sessionPath", "SESSION_PATH"},
	{"rollbarToken", "ROLLBAR_TOKEN"},
}

// NewConfig loads the configuration from the environment.
// An optional `config/.env.<env>` file in the working directory is loaded first.
func NewConfig() (*Config, error) {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("appName", "Mentorhub")
	conf.SetDefault("debug", true)
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("apiBaseURL", "http://localhost:8080/api")
	conf.SetDefault("apiTimeout", 15*time.Second)
	conf.SetDefault("apiMaxConcurrency", 4)
	conf.SetDefault("sessionPath", defaultSessionPath())
	conf.SetDefault("notifyLifetime", 3*time.Second)
	conf.SetDefault("assumeYes", false)
	conf.SetDefault("watchSchedule", "@every 30s")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "getting working directory")
	}
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	conf.AutomaticEnv()

	// unprefixed aliases; the prefixed variable wins
	for _, alias := range envAliases {
		if os.Getenv(env+"_"+strings.ToUpper(alias.key)) != "" {
			continue
		}
		if val := os.Getenv(alias.name); val != "" {
			conf.Set(alias.key, val)
		}
	}

	cfg := &Config{
		AppName:      conf.GetString("appName"),
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		RollbarToken: conf.GetString("rollbarToken"),
		API: APIConfig{
			BaseURL:        strings.TrimRight(conf.GetString("apiBaseURL"), "/"),
			Timeout:        conf.GetDuration("apiTimeout"),
			MaxConcurrency: conf.GetInt("apiMaxConcurrency"),
		},
		Session: SessionConfig{
			Path: conf.GetString("sessionPath"),
		},
		Notify: NotifyConfig{
			Lifetime:  conf.GetDuration("notifyLifetime"),
			AssumeYes: conf.GetBool("assumeYes"),
		},
		Watch: WatchConfig{
			Schedule: conf.GetString("watchSchedule"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("config: apiBaseURL is required")
	}
	if c.API.MaxConcurrency < 1 {
		return errors.New("config: apiMaxConcurrency must be at least 1")
	}
	if c.Session.Path == "" {
		return errors.New("config: sessionPath is required")
	}
	if c.Notify.Lifetime <= 0 {
		return errors.New("config: notifyLifetime must be positive")
	}
	return nil
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "mentorhub", "session.json")
}
