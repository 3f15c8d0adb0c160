package main

import (
	"context"
	"flag"
	"os"

	"github.com/diwise/idmc-opendata/internal/pkg/application/config"
	"github.com/diwise/idmc-opendata/internal/pkg/application/pipeline"
	"github.com/diwise/idmc-opendata/internal/pkg/infrastructure/catalog"
	"github.com/diwise/idmc-opendata/internal/pkg/infrastructure/fetcher"
	"github.com/diwise/idmc-opendata/internal/pkg/presentation"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

var configFileName string
var outputFolder string
var dryRun bool
var serve bool

func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	log := logging.GetFromContext(ctx)

	configFile, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Msgf("failed to open the configuration file %s", path)
		return nil, err
	}
	defer configFile.Close()

	return config.Load(configFile)
}

func main() {
	serviceName := "idmc-opendata"
	serviceVersion := buildinfo.SourceVersion()

	// a missing .env file is fine, the environment may already be set up
	_ = godotenv.Load()

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	log.Info().Msgf("Starting up %s ...", serviceName)

	flag.StringVar(&configFileName, "config", "assets/config/project_configuration.yaml", "The project configuration with sources, indicators and countries")
	flag.StringVar(&outputFolder, "folder", os.TempDir(), "The folder to stage downloaded workbooks and generated csv files in")
	flag.BoolVar(&dryRun, "dry-run", false, "Keep the generated records in memory instead of publishing them")
	flag.BoolVar(&serve, "serve", false, "Serve the records of a dry run on SERVICE_PORT after the run")
	flag.Parse()

	cfg, err := loadConfig(ctx, configFileName)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load configuration. Exiting.")
	}

	policy, err := pipeline.ParseFailurePolicy(env.GetVariableOrDefault(log, "IDMC_FAILURE_POLICY", string(pipeline.Skip)))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid failure policy")
	}

	var client catalog.Client
	memory := catalog.NewMemory()

	if dryRun {
		log.Info().Msg("dry run, nothing will be published")
		client = memory
	} else {
		catalogURL := env.GetVariableOrDie(log, "IDMC_CATALOG_URL", "catalog URL")
		apiKey := os.Getenv("IDMC_CATALOG_API_KEY")
		client = catalog.NewClient(catalogURL, apiKey)
	}

	summary, err := pipeline.New(fetcher.New(), client, cfg, outputFolder, policy).Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("pipeline failed")
	}

	if len(summary.Failed) > 0 {
		log.Warn().Msgf("failed to publish %d countries: %v", len(summary.Failed), summary.Failed)
	}

	if !serve {
		return
	}

	if !dryRun {
		log.Warn().Msg("only dry runs can be served, exiting")
		return
	}

	port := env.GetVariableOrDefault(log, "SERVICE_PORT", "8880")

	api := presentation.NewAPI(ctx, chi.NewRouter(), memory)
	if err = api.Start(port); err != nil {
		log.Fatal().Msgf("failed to start router: %s", err.Error())
	}
}
