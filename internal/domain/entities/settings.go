package entities

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	StrategyPush       = "push"
	StrategyCherryPick = "cherry-pick"

	defaultRequestTimeout    = 30 * time.Second
	defaultRequestsPerSecond = 10
	defaultAuthorName        = "gerritforge"
	defaultAuthorEmail       = "gerritforge@users.noreply.local"
)

var (
	// ErrMissingEndpoint is returned when no server endpoint is configured.
	ErrMissingEndpoint = errors.New("you must configure a Gerrit server endpoint")
	// ErrMissingCredentials is returned when username or password is missing.
	ErrMissingCredentials = errors.New("you must configure a Gerrit server username/password")
)

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Settings is the top-level configuration for gerritforge.
type Settings struct {
	Endpoint          string        `yaml:"endpoint"`
	Username          string        `yaml:"username"`
	Password          string        `yaml:"password"` // Inline, ${ENV_VAR}, or file path
	Strategy          string        `yaml:"strategy"` // "push" or "cherry-pick"
	LocalDir          string        `yaml:"local_dir"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	MinServerVersion  string        `yaml:"min_server_version"`
	PushgatewayURL    string        `yaml:"pushgateway_url"` // empty disables metrics push
	Author            AuthorConfig  `yaml:"author"`
}

// AuthorConfig is the identity used for local commits.
type AuthorConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// envOverrides are applied on top of the file configuration.
type envOverrides struct {
	Endpoint string `env:"GERRIT_ENDPOINT"`
	Username string `env:"GERRIT_USERNAME"`
	Password string `env:"GERRIT_PASSWORD"`
	Strategy string `env:"GERRIT_STRATEGY"`
	LocalDir string `env:"GERRIT_LOCAL_DIR"`

	PushgatewayURL string `env:"GERRITFORGE_PUSHGATEWAY_URL"`
}

// NewSettings loads the configuration file at path (if any), applies `.env`
// and environment overrides, fills defaults and validates the result.
// An empty path configures from the environment only.
func NewSettings(ctx context.Context, path string) (*Settings, error) {
	settings := &Settings{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	if err := applyEnvOverrides(ctx, settings); err != nil {
		return nil, err
	}

	settings.Password = resolveSecret(settings.Password)
	applyDefaults(settings)

	if err := validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".gerritforge.yaml",
		".gerritforge.yml",
		"gerritforge.yaml",
		"gerritforge.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

func applyEnvOverrides(ctx context.Context, settings *Settings) error {
	// a missing .env file is the common case
	_ = godotenv.Load()

	var env envOverrides
	if err := envconfig.Process(ctx, &env); err != nil {
		return fmt.Errorf("failed to process environment variables: %w", err)
	}

	overrideIfSet(&settings.Endpoint, env.Endpoint)
	overrideIfSet(&settings.Username, env.Username)
	overrideIfSet(&settings.Password, env.Password)
	overrideIfSet(&settings.Strategy, env.Strategy)
	overrideIfSet(&settings.LocalDir, env.LocalDir)
	overrideIfSet(&settings.PushgatewayURL, env.PushgatewayURL)
	return nil
}

func overrideIfSet(target *string, value string) {
	if value != "" {
		*target = value
	}
}

func applyDefaults(settings *Settings) {
	if settings.Endpoint != "" && !strings.HasSuffix(settings.Endpoint, "/") {
		settings.Endpoint += "/"
	}
	if settings.Strategy == "" {
		settings.Strategy = StrategyPush
	}
	if settings.LocalDir == "" {
		settings.LocalDir = filepath.Join(os.TempDir(), "gerritforge")
	}
	if settings.RequestTimeout <= 0 {
		settings.RequestTimeout = defaultRequestTimeout
	}
	if settings.RequestsPerSecond <= 0 {
		settings.RequestsPerSecond = defaultRequestsPerSecond
	}
	if settings.Author.Name == "" {
		settings.Author.Name = defaultAuthorName
	}
	if settings.Author.Email == "" {
		settings.Author.Email = defaultAuthorEmail
	}
}

// resolveSecret expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the secret from the file.
func resolveSecret(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read secret file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read secret from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func validate(settings *Settings) error {
	if settings.Endpoint == "" {
		return ErrMissingEndpoint
	}
	if settings.Username == "" || settings.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}
