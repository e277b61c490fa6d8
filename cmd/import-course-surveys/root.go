package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hkn-eecs/hkn/modules/coursesurveys/domain/entities"
	"github.com/hkn-eecs/hkn/modules/coursesurveys/infrastructure/persistence/memory"
	"github.com/hkn-eecs/hkn/modules/coursesurveys/infrastructure/persistence/postgres"
	"github.com/hkn-eecs/hkn/modules/coursesurveys/services"
	"github.com/hkn-eecs/hkn/pkg/configuration"
	"github.com/hkn-eecs/hkn/pkg/logging"
)

type importOptions struct {
	from        string
	verbose     bool
	skip        []string
	cacheDir    string
	dryRun      bool
	json        bool
	metricsFile string
}

func newRootCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import-course-surveys [options] /path/to/dumpfolder",
		Short: "Import a CSV dump of the legacy course survey database",
		Long: "Imports a dump made with `mysqldump --fields-terminated-by=,` of the legacy course survey\n" +
			"database. The dump folder must hold one <table>.txt file per imported table.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
				return withCode(exitUsage, errors.Wrap(services.ErrMissingArgument, "no dump path provided"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.from = args[0]
			return runImport(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withCode(exitUsage, err)
	})

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Output more detailed information (warning: spammy)")
	cmd.Flags().StringArrayVarP(&opts.skip, "skip", "s", nil, "Skip table <"+services.TableNames()+">")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "Directory for id-mapping cache files (default: $COURSE_SURVEYS_CACHE_DIR or .)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Import into an in-memory store and leave caches untouched")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the run summary as one JSON line")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write import metrics to this Prometheus textfile")
	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}

func runImport(ctx context.Context, out io.Writer, opts importOptions) error {
	skip := make([]services.Table, 0, len(opts.skip))
	for _, name := range opts.skip {
		t, err := services.ParseTable(name)
		if err != nil {
			return withCode(exitUsage, errors.Wrap(err, "invalid --skip"))
		}
		skip = append(skip, t)
	}

	fmt.Fprintln(out, "Warming up... please wait.")

	conf, err := configuration.Load(configuration.DefaultEnvFiles)
	if err != nil {
		return withCode(exitOther, errors.Wrap(err, "load configuration"))
	}
	defer conf.Unload()

	logger := conf.Logger()
	if opts.verbose && !logger.IsLevelEnabled(logrus.InfoLevel) {
		logger.SetLevel(logrus.InfoLevel)
	}
	log := logger.WithField("env", conf.GoAppEnvironment)

	if conf.OpenTelemetry.Enabled {
		cleanup := logging.SetupTracing(ctx, conf.OpenTelemetry.ServiceName, conf.OpenTelemetry.TempoURL)
		defer cleanup()
	}

	cacheDir := opts.cacheDir
	if cacheDir == "" {
		cacheDir = conf.CourseSurveys.CacheDir
	}

	var store entities.Store
	if opts.dryRun {
		log.Info("Dry run: importing into an in-memory store.")
		store = memory.New()
	} else {
		pool, err := postgres.Open(ctx, conf.Database.ConnectionString())
		if err != nil {
			return withCode(exitStore, err)
		}
		defer pool.Close()
		store = postgres.New(pool)
	}

	metrics := services.NewMetrics()
	importer, err := services.NewImporter(store, services.Options{
		From:         opts.from,
		Skip:         skip,
		Verbose:      opts.verbose,
		CacheDir:     cacheDir,
		DisableCache: opts.dryRun,
		Metrics:      metrics,
	}, log)
	if err != nil {
		return withCode(classify(err), err)
	}

	summary, runErr := importer.Run(ctx)

	if opts.metricsFile != "" {
		if err := metrics.WriteTextfile(opts.metricsFile); err != nil {
			log.WithError(err).Warn("Couldn't write metrics file")
		}
	}
	if opts.json {
		if err := writeJSONLine(out, summary); err != nil {
			return err
		}
	}
	if runErr != nil {
		return withCode(classify(runErr), runErr)
	}

	fmt.Fprintln(out, "All done.")
	return nil
}
