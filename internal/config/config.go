package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/djmattyg007/docker-registry-tui/internal/app"
	"github.com/djmattyg007/docker-registry-tui/internal/registry"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envRegistryURL      = "REGISTRY_URL"
	envRegistryUsername = "REGISTRY_USERNAME"
	envRegistryPassword = "REGISTRY_PASSWORD"
	envInsecure         = "DREG_INSECURE"
	envPlatform         = "DREG_PREFERRED_PLATFORM"
	envCacheBudget      = "DREG_CACHE_BUDGET"
	envWidth            = "DREG_WIDTH"
	envHeight           = "DREG_HEIGHT"
	envShowFooter       = "DREG_FOOTER"
	envVerbose          = "DREG_VERBOSE"
	envTrace            = "DREG_TRACE"
	envLogFile          = "DREG_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("dreg-tui", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	url := fs.String("registry", envOrDefault(env, envRegistryURL, ""), "registry endpoint, e.g. https://registry.example.com (or first positional argument)")
	username := fs.String("username", envOrDefault(env, envRegistryUsername, ""), "basic-auth username")
	password := fs.String("password", envOrDefault(env, envRegistryPassword, ""), "basic-auth password")
	insecure := fs.Bool("insecure", envOrBool(env, envInsecure, false), "use plain http and skip registry name validation")
	platform := fs.String("platform", envOrDefault(env, envPlatform, ""), "preferred platform listed first, e.g. linux/amd64")
	budget := fs.Int("cache-budget", envOrInt(env, envCacheBudget, 0), "number of loaded menus kept in memory (0 uses the default)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "log registry reachability changes")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	endpoint := strings.TrimSpace(*url)
	if endpoint == "" && fs.NArg() > 0 {
		endpoint = strings.TrimSpace(fs.Arg(0))
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *budget < 0 {
		return Config{}, fmt.Errorf("cache-budget must be >= 0 (got %d)", *budget)
	}

	cfg := Config{
		App: app.Config{
			Registry: registry.Config{
				URL:      endpoint,
				Username: *username,
				Password: *password,
				Insecure: *insecure,
			},
			PreferredPlatform: *platform,
			CacheBudget:       *budget,
			Width:             *width,
			Height:            *height,
			ShowFooter:        *footer,
			Verbose:           *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"registry":    endpoint,
			"username":    *username,
			"insecure":    strconv.FormatBool(*insecure),
			"platform":    *platform,
			"cacheBudget": strconv.Itoa(*budget),
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"verbose":     strconv.FormatBool(*verbose),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Registry.URL == "" {
		return fmt.Errorf("a registry endpoint is required (flag -registry, env %s, or first argument)", envRegistryURL)
	}
	return nil
}
