package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"catalogo-productos/models"
	"catalogo-productos/utils"
)

// Source kinds, exactly one per deployment
const (
	SourceCSV      = "csv"
	SourceJSON     = "json"
	SourceDrive    = "drive"
	SourcePostgres = "postgres"
)

// Config holds the deployment settings resolved once at startup
type Config struct {
	Env     string `yaml:"env"`
	Port    string `yaml:"port"`
	BaseURL string `yaml:"baseUrl"` // Used by the PDF export to reach the print layout

	Source          string        `yaml:"source"`
	SourceURL       string        `yaml:"sourceUrl"` // URL or local path of the CSV/JSON document
	DriveSheetID    string        `yaml:"driveSheetId"`
	CredentialsPath string        `yaml:"credentialsPath"`
	LoadTimeout     time.Duration `yaml:"loadTimeout"` // 0 means no timeout

	// Facets is the capability set of filter controls present in this deployment
	Facets   []string `yaml:"facets"`
	Currency string   `yaml:"currency"`

	ThumbnailsEnabled bool   `yaml:"thumbnails"`
	CacheDir          string `yaml:"cacheDir"`
	ChromePath        string `yaml:"chromePath"`
	ExportPerMinute   int    `yaml:"exportPerMinute"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Env:             "development",
		Port:            "8080",
		Source:          SourceCSV,
		Facets:          []string{models.FacetCategory},
		Currency:        "ARS",
		CacheDir:        "cache/images",
		ExportPerMinute: 6,
	}
}

// Load resolves the configuration: defaults, then the optional YAML file named
// by CATALOG_CONFIG, then environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CATALOG_CONFIG")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Env, "ENV")
	setString(&cfg.Port, "PORT")
	setString(&cfg.BaseURL, "BASE_URL")
	setString(&cfg.Source, "CATALOG_SOURCE")
	setString(&cfg.SourceURL, "CATALOG_SOURCE_URL")
	setString(&cfg.DriveSheetID, "DRIVE_SHEET_ID")
	setString(&cfg.CredentialsPath, "GOOGLE_APPLICATION_CREDENTIALS")
	setString(&cfg.Currency, "CATALOG_CURRENCY")
	setString(&cfg.CacheDir, "CACHE_DIR")
	setString(&cfg.ChromePath, "CHROME_PATH")

	if v := strings.TrimSpace(os.Getenv("CATALOG_FACETS")); v != "" {
		cfg.Facets = strings.Split(v, ",")
	}
	if v := strings.TrimSpace(os.Getenv("CATALOG_LOAD_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CATALOG_LOAD_TIMEOUT %q: %w", v, err)
		}
		cfg.LoadTimeout = d
	}
	if v := strings.TrimSpace(os.Getenv("THUMBNAILS_ENABLED")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid THUMBNAILS_ENABLED %q: %w", v, err)
		}
		cfg.ThumbnailsEnabled = b
	}
	if v := strings.TrimSpace(os.Getenv("EXPORT_PER_MINUTE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid EXPORT_PER_MINUTE %q: %w", v, err)
		}
		cfg.ExportPerMinute = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func (c *Config) normalize() {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))

	// Remove leading colon if present (PORT from some platforms includes it)
	c.Port = strings.TrimPrefix(strings.TrimSpace(c.Port), ":")

	seen := make(map[string]bool, len(c.Facets))
	facets := make([]string, 0, len(c.Facets))
	for _, f := range c.Facets {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		facets = append(facets, f)
	}
	c.Facets = facets

	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:" + c.Port
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
}

// Validate checks that the selected source has what it needs
func (c Config) Validate() error {
	switch c.Source {
	case SourceCSV, SourceJSON:
		if c.SourceURL == "" {
			return fmt.Errorf("CATALOG_SOURCE_URL is required for source %q", c.Source)
		}
	case SourceDrive:
		if c.DriveSheetID == "" {
			return fmt.Errorf("DRIVE_SHEET_ID is required for source %q", c.Source)
		}
		if c.CredentialsPath == "" {
			return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
		}
	case SourcePostgres:
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q (valid: csv, json, drive, postgres)", c.Source)
	}
	if !utils.ValidCurrency(c.Currency) {
		return fmt.Errorf("invalid CATALOG_CURRENCY %q: expected an ISO 4217 code", c.Currency)
	}
	return nil
}

// IsProduction reports whether ENV is production
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
