package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ListingHost is the public listing site crawled for event links.
	ListingHost = "https://www.eventbrite.com"
	// APIHost is the authenticated details API.
	APIHost = "https://www.eventbriteapi.com"

	// TokenEnvVar names the environment variable holding the API bearer token.
	TokenEnvVar = "EVENTBRITE_TOKEN"

	// DefaultLookaheadDays is the rolling acceptance window for event start times.
	DefaultLookaheadDays = 30
	// DefaultPause is the delay applied between successful detail fetches.
	DefaultPause = 500 * time.Millisecond

	// LocalTimeZone is the zone all displayed start times are converted into.
	LocalTimeZone = "America/Los_Angeles"

	// CSVFileName and MarkdownFileName are the two export artifacts.
	CSVFileName      = "leap_events_socal.csv"
	MarkdownFileName = "leap_events_socal.md"
)

// City pairs a display name (used for exact venue matching) with its
// listing-path slug.
type City struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

// Keyword pairs a display label with its listing-path slug.
type Keyword struct {
	Label string `yaml:"label"`
	Slug  string `yaml:"slug"`
}

// SearchTarget is one (city, keyword) combination to crawl. Targets are
// enumerated once at startup and never mutated.
type SearchTarget struct {
	CityName    string
	CitySlug    string
	Keyword     string
	KeywordSlug string
}

// Config holds the search cross-product and run parameters.
type Config struct {
	Cities   []City    `yaml:"cities"`
	Keywords []Keyword `yaml:"keywords"`
}

// Default returns the compiled-in SoCal configuration: five cities by four
// keywords.
func Default() *Config {
	return &Config{
		Cities: []City{
			{Name: "Los Angeles", Slug: "los-angeles"},
			{Name: "San Diego", Slug: "san-diego"},
			{Name: "Irvine", Slug: "irvine"},
			{Name: "Long Beach", Slug: "long-beach"},
			{Name: "Pasadena", Slug: "pasadena"},
		},
		Keywords: []Keyword{
			{Label: "LEAP", Slug: "leap"},
			{Label: "Leadership", Slug: "leadership"},
			{Label: "Entrepreneurship", Slug: "entrepreneurship"},
			{Label: "Professional Development", Slug: "professional-development"},
		},
	}
}

// LoadFile reads a YAML config overriding the compiled-in cross-product.
// Sections left empty in the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg := Default()
	if len(fileCfg.Cities) > 0 {
		cfg.Cities = fileCfg.Cities
	}
	if len(fileCfg.Keywords) > 0 {
		cfg.Keywords = fileCfg.Keywords
	}

	return cfg, nil
}

// Targets expands the configuration into the full city x keyword cross-product,
// cities outermost, in declaration order.
func (c *Config) Targets() []SearchTarget {
	targets := make([]SearchTarget, 0, len(c.Cities)*len(c.Keywords))
	for _, city := range c.Cities {
		for _, kw := range c.Keywords {
			targets = append(targets, SearchTarget{
				CityName:    city.Name,
				CitySlug:    city.Slug,
				Keyword:     kw.Label,
				KeywordSlug: kw.Slug,
			})
		}
	}
	return targets
}

// ResolveToken returns the API bearer token: an explicit flag value wins,
// otherwise the environment (after best-effort .env loading).
func ResolveToken(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	if token := os.Getenv(TokenEnvVar); token != "" {
		return token, nil
	}

	return "", fmt.Errorf("no API token: set --token or %s", TokenEnvVar)
}
