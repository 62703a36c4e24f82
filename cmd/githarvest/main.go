package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quantmind-br/githarvest-go/internal/cache"
	"github.com/quantmind-br/githarvest-go/internal/config"
	"github.com/quantmind-br/githarvest-go/internal/domain"
	"github.com/quantmind-br/githarvest-go/internal/extract"
	"github.com/quantmind-br/githarvest-go/internal/fetcher"
	"github.com/quantmind-br/githarvest-go/internal/gitbucket"
	"github.com/quantmind-br/githarvest-go/internal/harvest"
	"github.com/quantmind-br/githarvest-go/internal/output"
	"github.com/quantmind-br/githarvest-go/internal/utils"
	"github.com/quantmind-br/githarvest-go/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "githarvest",
	Short: "Harvest a GitBucket service into indexable records",
	Long: `GitHarvest walks every repository of a GitBucket service and turns its
files, issues and wiki pages into uniform JSON records with provenance
(view URL, access roles, category label), ready for an indexing pipeline.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.githarvest/config.yaml)")
	rootCmd.PersistentFlags().String("url", "", "GitBucket root URL")
	rootCmd.PersistentFlags().String("token", "", "GitBucket API token")
	rootCmd.PersistentFlags().Duration("read-interval", config.DefaultReadInterval, "Delay between requests (0 disables throttling)")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().StringP("records", "o", config.DefaultRecordsPath, "Records output file (\"-\" for stdout)")
	rootCmd.PersistentFlags().String("failures", config.DefaultFailuresPath, "Failure log file (empty disables)")
	rootCmd.PersistentFlags().Bool("cache", config.DefaultCacheEnabled, "Cache responses between runs")
	rootCmd.PersistentFlags().Duration("cache-ttl", config.DefaultCacheTTL, "Cache TTL")
	rootCmd.PersistentFlags().String("cache-dir", config.CacheDir(), "Cache directory")
	rootCmd.PersistentFlags().String("role-prefix", config.DefaultRolePrefix, "Prefix prepended to resolved role identifiers")
	rootCmd.PersistentFlags().Bool("progress", false, "Show a progress bar across repositories")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("gitbucket.url", rootCmd.PersistentFlags().Lookup("url"))
	_ = viper.BindPFlag("gitbucket.token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("gitbucket.read_interval", rootCmd.PersistentFlags().Lookup("read-interval"))
	_ = viper.BindPFlag("gitbucket.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("output.records", rootCmd.PersistentFlags().Lookup("records"))
	_ = viper.BindPFlag("output.failures", rootCmd.PersistentFlags().Lookup("failures"))
	_ = viper.BindPFlag("output.progress", rootCmd.PersistentFlags().Lookup("progress"))
	_ = viper.BindPFlag("cache.enabled", rootCmd.PersistentFlags().Lookup("cache"))
	_ = viper.BindPFlag("cache.ttl", rootCmd.PersistentFlags().Lookup("cache-ttl"))
	_ = viper.BindPFlag("cache.directory", rootCmd.PersistentFlags().Lookup("cache-dir"))
	_ = viper.BindPFlag("roles.prefix", rootCmd.PersistentFlags().Lookup("role-prefix"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	log := utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Shutting down gracefully...")
		cancel()
	}()

	var responseCache domain.Cache
	if cfg.Cache.Enabled {
		responseCache, err = cache.NewBadgerCache(cache.Options{Directory: cfg.Cache.Directory})
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer responseCache.Close()
	}

	httpClient, err := fetcher.NewClient(fetcher.ClientOptions{
		Timeout:     cfg.GitBucket.Timeout,
		AuthToken:   cfg.GitBucket.Token,
		EnableCache: cfg.Cache.Enabled,
		CacheTTL:    cfg.Cache.TTL,
		Cache:       responseCache,
	})
	if err != nil {
		return fmt.Errorf("failed to create http client: %w", err)
	}
	defer httpClient.Close()

	throttle := utils.NewThrottle(cfg.GitBucket.ReadInterval)

	client := gitbucket.NewClient(gitbucket.ClientOptions{
		RootURL:  cfg.GitBucket.URL,
		Fetcher:  httpClient,
		Throttle: throttle,
		Logger:   log,
	})

	sink, err := output.NewJSONLSink(cfg.Output.Records)
	if err != nil {
		return fmt.Errorf("failed to open records output: %w", err)
	}
	defer sink.Close()

	var failures domain.FailureRecorder
	if cfg.Output.Failures != "" {
		recorder, err := output.NewJSONLFailures(cfg.Output.Failures)
		if err != nil {
			return fmt.Errorf("failed to open failure log: %w", err)
		}
		defer recorder.Close()
		failures = recorder
	}

	rolePrefix := cfg.Roles.Prefix
	resolveRole := func(user string) string { return rolePrefix + user }

	harvester := harvest.NewHarvester(harvest.HarvesterOptions{
		Client:    client,
		Extractor: extract.NewExtractor(httpClient, log),
		Sink:      sink,
		Failures:  failures,
		Throttle:  throttle,
		Logger:    log,
	})

	runner := harvest.NewRunner(harvest.RunnerOptions{
		Client:       client,
		Harvester:    harvester,
		RoleResolver: resolveRole,
		Throttle:     throttle,
		Progress:     cfg.Output.Progress,
		Logger:       log,
	})

	err = runner.Run(ctx)
	if errors.Is(err, domain.ErrNoRepositories) {
		// Nothing to harvest is a clean end, already logged.
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().Int("records", sink.Count()).Msg("harvest finished")
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
