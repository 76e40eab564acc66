package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultAddr            = ":5005"
	DefaultTwitchGQLURL    = "https://gql.twitch.tv/gql"
	DefaultTwitchClientID  = "r8s4dac0uhzifbpu9sjdiwzctle17ff"
	DefaultFreshnessWindow = 60 * time.Second
	DefaultGQLTimeout      = 10 * time.Second
	DefaultAvatarTimeout   = 5 * time.Second
)

type Config struct {
	Addr            string
	LogLevel        logrus.Level
	TwitchGQLURL    string
	TwitchClientID  string
	FreshnessWindow time.Duration
	GQLTimeout      time.Duration
	AvatarTimeout   time.Duration
	TemplateDir     string
	CORSOrigins     string
}

// Load reads envFile (if it exists) into the environment and builds the config from it.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Wrapf(err, "load %s", envFile)
		}
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, errors.Wrap(err, "LOG_LEVEL")
	}

	freshness, err := getDuration("FRESHNESS_WINDOW", DefaultFreshnessWindow)
	if err != nil {
		return nil, err
	}

	gqlTimeout, err := getDuration("GQL_TIMEOUT", DefaultGQLTimeout)
	if err != nil {
		return nil, err
	}

	avatarTimeout, err := getDuration("AVATAR_TIMEOUT", DefaultAvatarTimeout)
	if err != nil {
		return nil, err
	}

	return &Config{
		Addr:            getEnv("ADDR", DefaultAddr),
		LogLevel:        level,
		TwitchGQLURL:    getEnv("TWITCH_GQL_URL", DefaultTwitchGQLURL),
		TwitchClientID:  getEnv("TWITCH_CLIENT_ID", DefaultTwitchClientID),
		FreshnessWindow: freshness,
		GQLTimeout:      gqlTimeout,
		AvatarTimeout:   avatarTimeout,
		TemplateDir:     os.Getenv("TEMPLATE_DIR"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrap(err, key)
	}

	if d <= 0 {
		return 0, errors.Errorf("%s must be positive, got %s", key, v)
	}

	return d, nil
}
