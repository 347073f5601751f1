package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/prepdeck/prepdeck/internal/catalog"
	"github.com/prepdeck/prepdeck/internal/interview"
	"github.com/prepdeck/prepdeck/internal/logger"
	"github.com/prepdeck/prepdeck/internal/scoring"
	"github.com/prepdeck/prepdeck/internal/session"
	"github.com/prepdeck/prepdeck/internal/speech"
	"github.com/prepdeck/prepdeck/internal/store"
)

const (
	PromptSave    = "Save this session"
	PromptDiscard = "Discard"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a practice interview session in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		runSession(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("level", "L", "", "question level (junior, middle, senior)")
	runCmd.Flags().Duration("duration", 0, "session time limit (default from config)")
	runCmd.Flags().Bool("no-save", false, "do not persist the session when it finishes")

	viper.BindPFlag("session.level", runCmd.Flags().Lookup("level"))
	viper.BindPFlag("session.duration", runCmd.Flags().Lookup("duration"))
}

func runSession(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	questions, err := catalog.Load(config.CatalogFile)
	if err != nil {
		logger.Fatal("loading the question catalog", zap.Error(err))
	}

	levelName := ""
	if config.Session != nil {
		levelName = config.Session.Level
	}
	if levelName == "" {
		levelPrompt := promptui.Select{
			Label: "Pick a question level",
			Items: questions.LevelNames(),
		}
		_, levelName, err = levelPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	level, err := questions.Level(levelName)
	if err != nil {
		logger.Fatal("selecting the level", zap.Error(err))
	}

	sessionCfg := config.Session
	if sessionCfg == nil {
		sessionCfg = &SessionConfig{}
	}

	fmt.Printf("\n%s practice session: %d questions, %s total.\n", level.Title, len(level.Questions), sessionCfg.Duration)
	fmt.Println("Answer each question; finish an answer with an empty line.")

	runner, err := interview.New(interview.Config{
		Level:         level,
		Evaluator:     scoring.NewEvaluator(weights(config)),
		Source:        speech.NewReaderSource(os.Stdin),
		Logger:        logger,
		Duration:      sessionCfg.Duration,
		QuestionDelay: sessionCfg.QuestionDelay,
		Hooks: interview.Hooks{
			OnQuestion: func(index, total int, q catalog.Question) {
				fmt.Printf("\nQuestion %d of %d: %s\n> ", index+1, total, q.Text)
			},
			OnResult: printResult,
		},
	})
	if err != nil {
		logger.Fatal("preparing the session", zap.Error(err))
	}

	sess, err := runner.Run(ctx)
	if err != nil {
		logger.Fatal("running the session", zap.Error(err))
	}

	printSummary(sess)

	if cmd.Flag("no-save").Value.String() == "true" {
		return
	}

	savePrompt := promptui.Select{
		Label: "Session finished",
		Items: []string{PromptSave, PromptDiscard},
	}
	_, action, err := savePrompt.Run()
	if err != nil || action != PromptSave {
		logger.Info("session discarded")
		return
	}

	// A storage failure must not swallow the results the user just saw, so
	// persistence problems are reported without tearing the process down.
	sessions, err := store.Open(config.StoreFile)
	if err != nil {
		logger.Error("opening the session store", zap.Error(err))
		return
	}
	defer sessions.Close()

	if err := sessions.SaveSession(sess); err != nil {
		logger.Error("saving the session", zap.Error(err))
		return
	}

	logger.Info("session saved",
		zap.String("session_id", sess.ID),
		zap.String("store", config.StoreFile),
	)
}

func printResult(_ int, a *session.Answer) {
	if !a.Answered {
		fmt.Println("No input captured for this question; it will not be scored.")
		return
	}

	fmt.Printf("relevance %d / clarity %d / completeness %d (%d words)\n",
		a.Relevance, a.Clarity, a.Completeness, a.WordCount)
	fmt.Println(a.Feedback)
}

func printSummary(sess *session.Session) {
	stats := sess.Stats()

	var b strings.Builder
	fmt.Fprintf(&b, "\nSession %s\n", sess.ID)
	fmt.Fprintf(&b, "answered %d of %d questions, %d words total\n",
		stats.AnsweredQuestions, stats.TotalQuestions, stats.TotalWords)
	fmt.Fprintf(&b, "averages: relevance %d, clarity %d, completeness %d\n",
		stats.AvgRelevance, stats.AvgClarity, stats.AvgCompleteness)
	fmt.Fprintf(&b, "time spent: %s\n", stats.TimeSpent.Round(time.Second))

	fmt.Print(b.String())
}
