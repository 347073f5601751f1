package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/prepdeck/prepdeck/internal/ai"
	"github.com/prepdeck/prepdeck/internal/ai/gemini"
	"github.com/prepdeck/prepdeck/internal/scoring"
	"github.com/prepdeck/prepdeck/internal/secrets"
)

const (
	app = "prepdeck"
)

// Config is the application configuration, read from prepdeck.yaml and the
// environment.
type Config struct {
	Listen      string         `mapstructure:"listen"`
	CatalogFile string         `mapstructure:"catalog-file"`
	StoreFile   string         `mapstructure:"store-file"`
	Session     *SessionConfig `mapstructure:"session"`
	Scoring     *ScoringConfig `mapstructure:"scoring"`
	AI          *AIConfig      `mapstructure:"ai"`
}

// SessionConfig controls the practice-session flow.
type SessionConfig struct {
	Level         string        `mapstructure:"level"`
	Duration      time.Duration `mapstructure:"duration"`
	QuestionDelay time.Duration `mapstructure:"question-delay"`
}

// ScoringConfig overrides the scoring tuning constants. Zero fields keep the
// shipped defaults.
type ScoringConfig struct {
	TargetSentenceLength float64 `mapstructure:"target-sentence-length"`
	SentencePenalty      float64 `mapstructure:"sentence-penalty"`
	FillerPenalty        float64 `mapstructure:"filler-penalty"`
	CompletenessTarget   float64 `mapstructure:"completeness-target"`
	RelevanceBoost       float64 `mapstructure:"relevance-boost"`
	KeywordBonus         float64 `mapstructure:"keyword-bonus"`
}

// AIConfig enables the optional model-backed answer coach.
type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Gemini provider settings.
type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "prepdeck is a mock-interview practice tool: it scores transcribed answers and serves the evaluation API",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is prepdeck.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("listen", ":8080")
	viper.SetDefault("store-file", "prepdeck.db")
	viper.SetDefault("session.duration", "10m")
	viper.SetDefault("session.question-delay", "2s")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The defaults are complete, so a missing config file is fine; a broken
	// one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &config,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, fmt.Errorf("building config decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return config, nil
}

// weights maps the scoring config onto the evaluator's tuning constants.
func weights(cfg *Config) scoring.Weights {
	w := scoring.DefaultWeights()
	if cfg == nil || cfg.Scoring == nil {
		return w
	}

	sc := cfg.Scoring
	if sc.TargetSentenceLength > 0 {
		w.TargetSentenceLength = sc.TargetSentenceLength
	}
	if sc.SentencePenalty > 0 {
		w.SentencePenalty = sc.SentencePenalty
	}
	if sc.FillerPenalty > 0 {
		w.FillerPenalty = sc.FillerPenalty
	}
	if sc.CompletenessTarget > 0 {
		w.CompletenessTarget = sc.CompletenessTarget
	}
	if sc.RelevanceBoost > 0 {
		w.RelevanceBoost = sc.RelevanceBoost
	}
	if sc.KeywordBonus > 0 {
		w.KeywordBonus = sc.KeywordBonus
	}

	return w
}

// newCoach builds the optional Gemini coach. A disabled or missing AI config
// returns nil without error; a broken one returns the error so the caller
// can decide whether to continue without coaching.
func newCoach(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Coach, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := cfg.Provider
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when the ai coach is enabled")
	}

	apiKey, err := secrets.Load("gemini api key", cfg.Gemini.APIKeyFile, cfg.Gemini.APIKey)
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	coachLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewCoach(generator, coachLogger, cfg.Gemini.MaxLogLength), nil
}
