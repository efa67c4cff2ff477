package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rohmanhakim/termdeck/internal/fetcher"
	"github.com/rohmanhakim/termdeck/internal/output"
)

// FetcherKind selects which definition fetcher variant a run uses.
type FetcherKind string

const (
	FetcherRemote FetcherKind = "remote"
	FetcherStub   FetcherKind = "stub"
)

// EnvAPIKey is the environment variable holding the remote credential.
// The credential is never stored in a config file.
const EnvAPIKey = "DEEPINFRA_API_KEY"

type Config struct {
	//===============
	// Input / output
	//===============
	// Path of the text file holding one term per line.
	termsFile string
	// Path of the resulting artifact.
	outputPath string
	// Output artifact kind; auto infers from the output extension.
	format output.Format

	//===============
	// Fetching
	//===============
	// Which fetcher variant to use.
	fetcherKind FetcherKind
	// Generation model identifier sent to the remote endpoint.
	model string
	// Chat completions endpoint URL.
	endpoint string
	// Maximum time of a single definition request.
	timeout time.Duration

	//===============
	// Cache
	//===============
	// Path of the JSON cache file mapping terms to raw definitions.
	cacheFile string
	// Minimum time between opportunistic cache flushes during a run.
	flushInterval time.Duration

	//===============
	// Deck
	//===============
	// Display name of the generated Anki deck.
	deckName string

	//===============
	// Behavior
	//===============
	// Whether the run fetches and reports without writing the artifact.
	dryRun bool
}

type configDTO struct {
	TermsFile     string        `json:"termsFile"`
	OutputPath    string        `json:"outputPath,omitempty"`
	Format        string        `json:"format,omitempty"`
	Fetcher       string        `json:"fetcher,omitempty"`
	Model         string        `json:"model,omitempty"`
	Endpoint      string        `json:"endpoint,omitempty"`
	Timeout       time.Duration `json:"timeout,omitempty"`
	CacheFile     string        `json:"cacheFile,omitempty"`
	FlushInterval time.Duration `json:"flushInterval,omitempty"`
	DeckName      string        `json:"deckName,omitempty"`
	DryRun        bool          `json:"dryRun,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg, err := WithDefault(dto.TermsFile).Build()
	if err != nil {
		return Config{}, err
	}

	if dto.OutputPath != "" {
		cfg.outputPath = dto.OutputPath
	}
	if dto.Format != "" {
		cfg.format = output.Format(dto.Format)
	}
	if dto.Fetcher != "" {
		cfg.fetcherKind = FetcherKind(dto.Fetcher)
	}
	if dto.Model != "" {
		cfg.model = dto.Model
	}
	if dto.Endpoint != "" {
		cfg.endpoint = dto.Endpoint
	}
	if dto.Timeout != 0 {
		cfg.timeout = dto.Timeout
	}
	if dto.CacheFile != "" {
		cfg.cacheFile = dto.CacheFile
	}
	if dto.FlushInterval != 0 {
		cfg.flushInterval = dto.FlushInterval
	}
	if dto.DeckName != "" {
		cfg.deckName = dto.DeckName
	}
	cfg.dryRun = dto.DryRun

	return cfg, nil
}

// WithConfigFile loads a Config from a JSON file.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	if err := json.Unmarshal(configContent, &cfgDTO); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config with the provided terms file and default
// values for all other fields. termsFile is mandatory and must not be
// empty - an error will be returned by Build if it is.
func WithDefault(termsFile string) *Config {
	defaultConfig := Config{
		termsFile:     termsFile,
		outputPath:    "startup_terms.apkg",
		format:        output.FormatAuto,
		fetcherKind:   FetcherRemote,
		model:         fetcher.DefaultModel,
		endpoint:      fetcher.DefaultEndpoint,
		timeout:       time.Minute,
		cacheFile:     "definition_cache.json",
		flushInterval: fetcher.DefaultFlushInterval,
		deckName:      "Startup Terms in Russian",
		dryRun:        false,
	}
	return &defaultConfig
}

func (c *Config) WithOutputPath(path string) *Config {
	c.outputPath = path
	return c
}

func (c *Config) WithFormat(format output.Format) *Config {
	c.format = format
	return c
}

func (c *Config) WithFetcherKind(kind FetcherKind) *Config {
	c.fetcherKind = kind
	return c
}

func (c *Config) WithModel(model string) *Config {
	c.model = model
	return c
}

func (c *Config) WithEndpoint(endpoint string) *Config {
	c.endpoint = endpoint
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithCacheFile(path string) *Config {
	c.cacheFile = path
	return c
}

func (c *Config) WithFlushInterval(interval time.Duration) *Config {
	c.flushInterval = interval
	return c
}

func (c *Config) WithDeckName(name string) *Config {
	c.deckName = name
	return c
}

func (c *Config) WithDryRun(dryRun bool) *Config {
	c.dryRun = dryRun
	return c
}

func (c *Config) Build() (Config, error) {
	if c.termsFile == "" {
		return Config{}, fmt.Errorf("%w: termsFile cannot be empty", ErrInvalidConfig)
	}

	switch c.fetcherKind {
	case FetcherRemote, FetcherStub:
	default:
		return Config{}, fmt.Errorf("%w: unknown fetcher kind %q", ErrInvalidConfig, c.fetcherKind)
	}

	switch c.format {
	case output.FormatAuto, output.FormatAnki, output.FormatText:
	default:
		return Config{}, fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.format)
	}

	return *c, nil
}

// APIKeyFromEnv reads the remote credential from the process environment.
func APIKeyFromEnv() (string, error) {
	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		return "", fmt.Errorf("%w: set the %s environment variable", ErrMissingAPIKey, EnvAPIKey)
	}
	return apiKey, nil
}

func (c Config) TermsFile() string {
	return c.termsFile
}

func (c Config) OutputPath() string {
	return c.outputPath
}

func (c Config) Format() output.Format {
	return c.format
}

func (c Config) FetcherKind() FetcherKind {
	return c.fetcherKind
}

func (c Config) Model() string {
	return c.model
}

func (c Config) Endpoint() string {
	return c.endpoint
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) CacheFile() string {
	return c.cacheFile
}

func (c Config) FlushInterval() time.Duration {
	return c.flushInterval
}

func (c Config) DeckName() string {
	return c.deckName
}

func (c Config) DryRun() bool {
	return c.dryRun
}
