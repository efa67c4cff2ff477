package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/rohmanhakim/termdeck/internal/build"
	"github.com/rohmanhakim/termdeck/internal/config"
	"github.com/rohmanhakim/termdeck/internal/deck"
	"github.com/rohmanhakim/termdeck/internal/fetcher"
	"github.com/rohmanhakim/termdeck/internal/output"
	"github.com/rohmanhakim/termdeck/internal/pipeline"
	"github.com/rohmanhakim/termdeck/internal/progress"
	"github.com/rohmanhakim/termdeck/internal/terms"
)

var (
	cfgFile       string
	termsFile     string
	outputPath    string
	outputFormat  string
	fetcherKind   string
	model         string
	endpoint      string
	cacheFile     string
	timeout       time.Duration
	flushInterval time.Duration
	deckName      string
	dryRun        bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "termdeck",
	Short: "Turn a list of vocabulary terms into ready-to-study flashcards.",
	Long: `termdeck is a CLI application that reads a text file of vocabulary
terms, obtains a short definition for each term from a remote
text-generation service (or a local stand-in), and renders the resulting
pairs into an Anki flashcard deck or a plain-text dump.

Definitions are cached in a local JSON file, so re-running over the same
term list costs nothing and regenerated decks keep stable card
identities for safe re-import.`,
	Version: build.FullVersion(),
	Run: func(cmd *cobra.Command, args []string) {
		progress.InitLogger()

		if termsFile == "" && cfgFile == "" {
			fmt.Fprintf(os.Stderr, "Error: --terms-file is required. Please provide the input file of terms to define.\n")
			cmd.Usage()
			os.Exit(1)
		}

		cfg := InitConfig(termsFile)

		if err := runGenerate(cmd.Context(), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().StringVar(&termsFile, "terms-file", "", "input text file with one term per line")
	rootCmd.PersistentFlags().StringVar(&outputPath, "output", "", "output artifact path (default startup_terms.apkg)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "output format: auto, anki or text (auto infers from the output extension)")
	rootCmd.PersistentFlags().StringVar(&fetcherKind, "fetcher", "", "definition fetcher: remote or stub")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "generation model identifier")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "chat completions endpoint URL")
	rootCmd.PersistentFlags().StringVar(&cacheFile, "cache-file", "", "path of the definition cache file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for a single definition request")
	rootCmd.PersistentFlags().DurationVar(&flushInterval, "flush-interval", 0, "minimum time between cache flushes during a run")
	rootCmd.PersistentFlags().StringVar(&deckName, "deck-name", "", "display name of the generated Anki deck")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "fetch and report without writing the output artifact")
}

// runGenerate executes one full run: load terms, build the fetcher and
// sink, drive the pipeline inside the fetcher's scope, report a summary.
func runGenerate(ctx context.Context, cfg config.Config) error {
	termList, loadErr := terms.Load(cfg.TermsFile())
	if loadErr != nil {
		return loadErr
	}

	reporter := progress.NewConsoleReporter()
	sink, format := resolveSink(cfg)

	f, err := buildFetcher(cfg, reporter)
	if err != nil {
		return err
	}

	pl := pipeline.NewPipeline(reporter)

	var execution pipeline.RunExecution
	runErr := fetcher.Use(f, func(f fetcher.Fetcher) error {
		e, err := pl.Run(ctx, termList, f, sink, cfg.OutputPath())
		if err != nil {
			return err
		}
		execution = e
		return nil
	})
	if runErr != nil {
		return runErr
	}

	if cfg.DryRun() {
		log.Infof("dry run: processed %d terms, nothing written", execution.Stats().TotalTerms())
		return nil
	}
	log.Infof("processed %d terms into %s output at %s", execution.Stats().TotalTerms(), format, cfg.OutputPath())
	return nil
}

// resolveSink picks the output sink for the configured format, inferring
// it from the output extension when the format is auto.
func resolveSink(cfg config.Config) (output.Sink, output.Format) {
	format := output.DetectFormat(cfg.Format(), cfg.OutputPath())
	if cfg.DryRun() {
		return output.NewDiscardSink(), format
	}
	if format == output.FormatAnki {
		return deck.NewSink(cfg.DeckName()), format
	}
	return output.NewTextSink(), format
}

func buildFetcher(cfg config.Config, reporter progress.Sink) (fetcher.Fetcher, error) {
	if cfg.FetcherKind() == config.FetcherStub {
		return fetcher.NewStubFetcher(), nil
	}

	apiKey, err := config.APIKeyFromEnv()
	if err != nil {
		return nil, err
	}

	param := fetcher.NewRemoteParam(
		apiKey,
		cfg.Model(),
		cfg.Endpoint(),
		cfg.CacheFile(),
		cfg.Timeout(),
		cfg.FlushInterval(),
	)
	remote, ferr := fetcher.NewRemoteFetcher(param, reporter)
	if ferr != nil {
		return nil, ferr
	}
	return remote, nil
}

// InitConfig builds the run configuration from the config file or flags.
// termsFile is mandatory unless a config file provides it.
func InitConfig(termsFile string) config.Config {
	cfg, err := InitConfigWithError(termsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError builds the run configuration, returning any errors.
// This makes it easier to test error cases.
func InitConfigWithError(terms string) (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	configBuilder := config.WithDefault(terms)

	if outputPath != "" {
		configBuilder = configBuilder.WithOutputPath(outputPath)
	}
	if outputFormat != "" {
		configBuilder = configBuilder.WithFormat(output.Format(outputFormat))
	}
	if fetcherKind != "" {
		configBuilder = configBuilder.WithFetcherKind(config.FetcherKind(fetcherKind))
	}
	if model != "" {
		configBuilder = configBuilder.WithModel(model)
	}
	if endpoint != "" {
		configBuilder = configBuilder.WithEndpoint(endpoint)
	}
	if cacheFile != "" {
		configBuilder = configBuilder.WithCacheFile(cacheFile)
	}
	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}
	if flushInterval > 0 {
		configBuilder = configBuilder.WithFlushInterval(flushInterval)
	}
	if deckName != "" {
		configBuilder = configBuilder.WithDeckName(deckName)
	}
	if dryRun {
		configBuilder = configBuilder.WithDryRun(dryRun)
	}

	return configBuilder.Build()
}

func ResetFlags() {
	cfgFile = ""
	termsFile = ""
	outputPath = ""
	outputFormat = ""
	fetcherKind = ""
	model = ""
	endpoint = ""
	cacheFile = ""
	timeout = 0
	flushInterval = 0
	deckName = ""
	dryRun = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetOutputPathForTest(path string) {
	outputPath = path
}

func SetFormatForTest(format string) {
	outputFormat = format
}

func SetFetcherForTest(kind string) {
	fetcherKind = kind
}

func SetDryRunForTest(dry bool) {
	dryRun = dry
}
