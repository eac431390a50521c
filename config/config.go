package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration for both binaries. Each binary only
// validates the sections it actually uses.
type Config struct {
	Static StaticConfig
	Proxy  ProxyConfig
	Auth   AuthConfig
}

// StaticConfig configures the frontend static file server.
type StaticConfig struct {
	Host string
	Port int
	Root string
}

// ProxyConfig configures the upload proxy service.
type ProxyConfig struct {
	Port         int
	UploadDir    string
	MetadataFile string
}

// AuthConfig holds the credentials the upload proxy issues tokens for.
type AuthConfig struct {
	Username string
	Password string
	TokenTTL time.Duration
}

const (
	defaultStaticHost = "0.0.0.0"
	defaultStaticPort = 8000
	defaultProxyPort  = 3000
	defaultUploadDir  = "./uploads"
	defaultMetadata   = "uploads.json"
	defaultTokenTTL   = 24 * time.Hour
)

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present, matching the original
// deployment setup.
func Load() (*Config, error) {
	// Ignore a missing .env; real environment variables still apply.
	_ = godotenv.Load()

	staticPort, err := getEnvAsInt("STATIC_PORT", defaultStaticPort)
	if err != nil {
		return nil, err
	}
	proxyPort, err := getEnvAsInt("BACKEND_PORT", defaultProxyPort)
	if err != nil {
		return nil, err
	}
	ttl, err := getEnvAsDuration("TOKEN_TTL", defaultTokenTTL)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Static: StaticConfig{
			Host: getEnv("STATIC_HOST", defaultStaticHost),
			Port: staticPort,
			Root: getEnv("STATIC_ROOT", defaultStaticRoot()),
		},
		Proxy: ProxyConfig{
			Port:         proxyPort,
			UploadDir:    getEnv("UPLOAD_DIR", defaultUploadDir),
			MetadataFile: getEnv("METADATA_FILE", defaultMetadata),
		},
		Auth: AuthConfig{
			Username: os.Getenv("AUTH_USERNAME"),
			Password: os.Getenv("AUTH_PASSWORD"),
			TokenTTL: ttl,
		},
	}

	return cfg, nil
}

// defaultStaticRoot resolves the directory containing the running
// executable, the directory the frontend assets ship alongside.
func defaultStaticRoot() string {
	exe, err := os.Executable()
	if err != nil {
		wd, werr := os.Getwd()
		if werr != nil {
			return "."
		}
		return wd
	}
	return filepath.Dir(exe)
}

// Validate checks the static server section.
func (c *StaticConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid static server port: %d", c.Port)
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("static root %q: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("static root %q is not a directory", c.Root)
	}
	return nil
}

// Validate checks the upload proxy section.
func (c *ProxyConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid proxy port: %d", c.Port)
	}
	if c.UploadDir == "" {
		return fmt.Errorf("upload directory must not be empty")
	}
	if c.MetadataFile == "" {
		return fmt.Errorf("metadata file must not be empty")
	}
	return nil
}

// Validate checks the auth section. The upload proxy refuses to start
// without credentials to issue tokens against.
func (c *AuthConfig) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("AUTH_USERNAME must be set")
	}
	if c.Password == "" {
		return fmt.Errorf("AUTH_PASSWORD must be set")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	return n, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	return d, nil
}
