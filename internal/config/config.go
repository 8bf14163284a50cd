// Package config loads the service configuration from a YAML file,
// filling in defaults for anything the file leaves out.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// searchPaths are tried in order when no explicit path is given.
var searchPaths = []string{
	"simwatch.yml",
	"/etc/simwatch/simwatch.yml",
}

// Duration is a time.Duration that unmarshals from YAML strings like
// "15s" or "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// APIConfig describes the live data feed.
type APIConfig struct {
	// URL of the network data snapshot JSON.
	URL string `yaml:"url"`
	// PollPeriod is how often a new snapshot is fetched.
	PollPeriod Duration `yaml:"poll_period"`
	// Timeout bounds a single fetch.
	Timeout Duration `yaml:"timeout"`
}

// LogConfig controls logging output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// WebConfig describes the HTTP listener.
type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DataConfig points at the reference data sources. Slow or large
// sources are cached on disk at the companion cache paths.
type DataConfig struct {
	VatspyURL      string   `yaml:"vatspy_url"`
	BoundariesURL  string   `yaml:"boundaries_url"`
	RunwaysURL     string   `yaml:"runways_url"`
	CountriesURL   string   `yaml:"countries_url"`
	ShapesURL      string   `yaml:"shapes_url"`
	RunwaysCache   string   `yaml:"runways_cache"`
	CountriesCache string   `yaml:"countries_cache"`
	ShapesCache    string   `yaml:"shapes_cache"`
	ReloadPeriod   Duration `yaml:"reload_period"`
}

// TrackConfig describes track persistence.
type TrackConfig struct {
	// Folder is the root of the track store.
	Folder string `yaml:"folder"`
	// MaxAge is the track retention period.
	MaxAge Duration `yaml:"max_age"`
}

// MapConfig tunes the map streaming sessions.
type MapConfig struct {
	// WinMultiplier expands client viewports before querying so
	// objects enter the view already populated.
	WinMultiplier float64 `yaml:"win_multiplier"`
}

// WeatherConfig tunes the METAR cache.
type WeatherConfig struct {
	// TTL is how long a fetched METAR stays fresh.
	TTL Duration `yaml:"ttl"`
	// RefreshPeriod is how often expired cache entries are refetched.
	RefreshPeriod Duration `yaml:"refresh_period"`
}

// Config is the root configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Log     LogConfig     `yaml:"log"`
	Web     WebConfig     `yaml:"web"`
	Data    DataConfig    `yaml:"data"`
	Track   TrackConfig   `yaml:"track"`
	Map     MapConfig     `yaml:"map"`
	Weather WeatherConfig `yaml:"weather"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:        "https://data.vatsim.net/v3/vatsim-data.json",
			PollPeriod: Duration(15 * time.Second),
			Timeout:    Duration(10 * time.Second),
		},
		Log: LogConfig{Level: "debug"},
		Web: WebConfig{Host: "", Port: 8000},
		Data: DataConfig{
			VatspyURL:      "https://raw.githubusercontent.com/vatsimnetwork/vatspy-data-project/master/VATSpy.dat",
			BoundariesURL:  "https://raw.githubusercontent.com/vatsimnetwork/vatspy-data-project/master/Boundaries.geojson",
			RunwaysURL:     "https://ourairports.com/data/runways.csv",
			CountriesURL:   "http://download.geonames.org/export/dump/countryInfo.txt",
			ShapesURL:      "http://download.geonames.org/export/dump/shapes_simplified_low.json.zip",
			RunwaysCache:   "/tmp/runways.csv.cache",
			CountriesCache: "/tmp/geonames.countries.csv.cache",
			ShapesCache:    "/tmp/geonames.shapes.json.zip",
			ReloadPeriod:   Duration(24 * time.Hour),
		},
		Track: TrackConfig{
			Folder: "tracks",
			MaxAge: Duration(48 * time.Hour),
		},
		Map:     MapConfig{WinMultiplier: 1.3},
		Weather: WeatherConfig{TTL: Duration(30 * time.Minute), RefreshPeriod: Duration(5 * time.Minute)},
	}
}

// Load reads the configuration. With an empty path the standard
// search paths are tried; a missing file is not an error and yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		for _, candidate := range searchPaths {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		logrus.Info("[Config] no config file found, using defaults")
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	logrus.Infof("[Config] loaded %s", path)
	return cfg, nil
}

func (c *Config) validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("api.url must not be empty")
	}
	if c.API.PollPeriod <= 0 {
		return fmt.Errorf("api.poll_period must be positive")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port %d out of range", c.Web.Port)
	}
	if c.Map.WinMultiplier < 1 {
		return fmt.Errorf("map.win_multiplier must be at least 1")
	}
	if c.Track.Folder == "" {
		return fmt.Errorf("track.folder must not be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// LogrusLevel maps the configured level onto a logrus level.
func (c *Config) LogrusLevel() logrus.Level {
	switch c.Log.Level {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// ListenAddr returns the host:port the web server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}
