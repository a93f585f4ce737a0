package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"signpost/internal/domain"
)

type Config struct {
	Server   ServerConfig      `mapstructure:"server"`
	Platform PlatformConfig    `mapstructure:"platform"`
	Paths    PathsConfig       `mapstructure:"paths"`
	Routes   map[string]string `mapstructure:"routes"`
	Database DatabaseConfig    `mapstructure:"database"`
	Logging  LoggingConfig     `mapstructure:"logging"`
}

type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	Upstream string `mapstructure:"upstream"`
}

type PlatformConfig struct {
	AppDomain    string `mapstructure:"app_domain"`
	AlwaysUseSSL bool   `mapstructure:"always_use_ssl"`
}

// PathsConfig configures the two fallback destinations. Each destination is
// either a literal URL or a route name from [routes], never both.
type PathsConfig struct {
	CommunityNotFoundURL   string `mapstructure:"community_not_found_url"`
	CommunityNotFoundRoute string `mapstructure:"community_not_found_route"`
	NewCommunityURL        string `mapstructure:"new_community_url"`
	NewCommunityRoute      string `mapstructure:"new_community_route"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LoggingConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Level         string `mapstructure:"level"`
	Dir           string `mapstructure:"dir"`
	MainLogFile   string `mapstructure:"main_log_file"`
	AccessLogFile string `mapstructure:"access_log_file"`
	MaxSize       int    `mapstructure:"max_size"`
	MaxBackups    int    `mapstructure:"max_backups"`
	MaxAge        int    `mapstructure:"max_age"`
	Compress      bool   `mapstructure:"compress"`
}

func Load() (*Config, error) {
	var cfg Config

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.path", "signpost.db")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.dir", "logs")
	viper.SetDefault("logging.main_log_file", "signpost.log")
	viper.SetDefault("logging.access_log_file", "access.log")
	viper.SetDefault("logging.max_size", 100)
	viper.SetDefault("logging.max_backups", 3)
	viper.SetDefault("logging.max_age", 28)
	viper.SetDefault("logging.compress", true)

	if err := viper.UnmarshalKey("server", &cfg.Server); err != nil {
		return nil, fmt.Errorf("unable to decode server config: %w", err)
	}
	if err := viper.UnmarshalKey("platform", &cfg.Platform); err != nil {
		return nil, fmt.Errorf("unable to decode platform config: %w", err)
	}
	if err := viper.UnmarshalKey("paths", &cfg.Paths); err != nil {
		return nil, fmt.Errorf("unable to decode paths config: %w", err)
	}
	if err := viper.UnmarshalKey("database", &cfg.Database); err != nil {
		return nil, fmt.Errorf("unable to decode database config: %w", err)
	}
	if err := viper.UnmarshalKey("logging", &cfg.Logging); err != nil {
		return nil, fmt.Errorf("unable to decode logging config: %w", err)
	}

	// Handle the routes manually: route names map to local paths
	cfg.Routes = make(map[string]string)
	if routesRaw := viper.Get("routes"); routesRaw != nil {
		if routes, ok := routesRaw.(map[string]interface{}); ok {
			for name, path := range routes {
				if pathStr, ok := path.(string); ok {
					cfg.Routes[name] = pathStr
				}
			}
		}
	}
	if _, ok := cfg.Routes["new_community"]; !ok {
		cfg.Routes["new_community"] = "/communities/new"
	}
	if _, ok := cfg.Routes["community_not_found"]; !ok {
		cfg.Routes["community_not_found"] = "/not-found"
	}

	// Fall back to named routes only when neither form was configured, so a
	// configured URL never conflicts with a defaulted route name.
	if cfg.Paths.CommunityNotFoundURL == "" && cfg.Paths.CommunityNotFoundRoute == "" {
		cfg.Paths.CommunityNotFoundRoute = "community_not_found"
	}
	if cfg.Paths.NewCommunityURL == "" && cfg.Paths.NewCommunityRoute == "" {
		cfg.Paths.NewCommunityRoute = "new_community"
	}

	// Validate required fields
	if cfg.Platform.AppDomain == "" {
		return nil, fmt.Errorf("platform.app_domain is required")
	}
	if strings.Contains(cfg.Platform.AppDomain, "://") || strings.Contains(cfg.Platform.AppDomain, "/") {
		return nil, fmt.Errorf("platform.app_domain should be just the domain name (e.g. 'sharetribe.com')")
	}

	if err := validatePathEntry("community_not_found", cfg.Paths.CommunityNotFoundURL, cfg.Paths.CommunityNotFoundRoute, cfg.Routes); err != nil {
		return nil, err
	}
	if err := validatePathEntry("new_community", cfg.Paths.NewCommunityURL, cfg.Paths.NewCommunityRoute, cfg.Routes); err != nil {
		return nil, err
	}

	for name, path := range cfg.Routes {
		if !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("routes.%s must be an absolute path, got %q", name, path)
		}
	}

	if cfg.Server.Upstream != "" && !strings.Contains(cfg.Server.Upstream, "://") {
		return nil, fmt.Errorf("server.upstream must be a full URL (e.g. 'http://127.0.0.1:3000')")
	}

	return &cfg, nil
}

func validatePathEntry(name, url, route string, routes map[string]string) error {
	if url != "" && route != "" {
		return fmt.Errorf("paths.%s_url and paths.%s_route are mutually exclusive", name, name)
	}
	if url == "" && route == "" {
		return fmt.Errorf("paths.%s_url or paths.%s_route is required", name, name)
	}
	if route != "" {
		if _, ok := routes[route]; !ok {
			return fmt.Errorf("paths.%s_route references unknown route %q", name, route)
		}
	}
	return nil
}

// PlatformConfigs materializes the engine's platform record.
func (c *Config) PlatformConfigs() domain.Configs {
	return domain.Configs{
		AlwaysUseSSL: c.Platform.AlwaysUseSSL,
		AppDomain:    c.Platform.AppDomain,
	}
}

// RedirectPaths materializes the engine's static fallback destinations.
func (c *Config) RedirectPaths() domain.Paths {
	return domain.Paths{
		CommunityNotFound: domain.Path{
			URL:       c.Paths.CommunityNotFoundURL,
			RouteName: domain.RouteName(c.Paths.CommunityNotFoundRoute),
		},
		NewCommunity: domain.Path{
			URL:       c.Paths.NewCommunityURL,
			RouteName: domain.RouteName(c.Paths.NewCommunityRoute),
		},
	}
}

// RoutePath resolves a named route to its configured local path.
func (c *Config) RoutePath(name domain.RouteName) (string, bool) {
	path, ok := c.Routes[string(name)]
	return path, ok
}
