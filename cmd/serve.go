package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/prepdeck/prepdeck/internal/catalog"
	"github.com/prepdeck/prepdeck/internal/logger"
	"github.com/prepdeck/prepdeck/internal/scoring"
	"github.com/prepdeck/prepdeck/internal/server"
	"github.com/prepdeck/prepdeck/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the answer-evaluation HTTP API",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address for the API (default :8080)")
	serveCmd.Flags().Bool("no-store", false, "serve without a session store")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the prepdeck api", zap.String("version", version))

	questions, err := catalog.Load(config.CatalogFile)
	if err != nil {
		logger.Fatal("loading the question catalog", zap.Error(err))
	}
	logger.Info("question catalog loaded", zap.Strings("levels", questions.LevelNames()))

	evaluator := scoring.NewEvaluator(weights(config))

	var sessions *store.Store
	if cmd.Flag("no-store").Value.String() != "true" {
		sessions, err = store.Open(config.StoreFile)
		if err != nil {
			logger.Fatal("opening the session store",
				zap.String("path", config.StoreFile),
				zap.Error(err),
			)
		}
		defer sessions.Close()
	}

	coach, err := newCoach(ctx, config.AI, logger)
	if err != nil {
		// The heuristic path works without a coach; keep serving.
		logger.Warn("ai coach disabled", zap.Error(err))
	}
	if coach != nil {
		logger.Info("ai coach enabled")
	}

	api := server.New(server.Config{
		Evaluator: evaluator,
		Catalog:   questions,
		Coach:     coach,
		Store:     sessions,
		Logger:    logger,
	})

	if err := api.Run(viper.GetString("listen")); err != nil {
		logger.Fatal("serving the api", zap.Error(err))
	}
}
