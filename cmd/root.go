package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alta-drill/alta/internal/app"
	"github.com/alta-drill/alta/internal/bank"
	"github.com/alta-drill/alta/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "alta",
	Short: "Quiz drill for the ALTA certification exam",
	Long:  "alta drills multiple-choice questions for the JSTQB Advanced Level Test Analyst exam, in the terminal or in a browser.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv(".env")
	},
	RunE:         runApp,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("questions", "", "Path to the question file (overrides ALTA_QUESTIONS)")
	f.String("db", "", "Path to SQLite database file (overrides ALTA_DB)")
	addQuizFlags(f)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv reads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// runApp loads the bank, opens the result log and launches the TUI.
// A bank error is shown inside the TUI rather than returned.
func runApp(cmd *cobra.Command, args []string) error {
	cfg, err := resolveQuizConfig(cmd)
	if err != nil {
		return err
	}

	opts := app.Options{Config: cfg}
	opts.Bank, opts.BankErr = loadBank(cmd)

	st := openStoreOrWarn(cmd)
	if st != nil {
		defer st.Close()
		opts.EventRepo = st.EventRepo()
	}

	return app.Run(opts)
}

// resolveQuestionsPath returns the --questions flag, then ALTA_QUESTIONS,
// then questions.json in the working directory.
func resolveQuestionsPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("questions"); p != "" {
		return p
	}
	if p := os.Getenv("ALTA_QUESTIONS"); p != "" {
		return p
	}
	return defaultQuestionsFile
}

const defaultQuestionsFile = "questions.json"

func loadBank(cmd *cobra.Command) (*bank.Bank, error) {
	return bank.Load(resolveQuestionsPath(cmd))
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ALTA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openStoreOrWarn opens the result log for the quiz surfaces. Quizzes run
// without it, so a failure is only reported.
func openStoreOrWarn(cmd *cobra.Command) *store.Store {
	s, err := openStore(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Result log unavailable:", err)
		fmt.Fprintln(os.Stderr, "Answers will not be recorded.")
		return nil
	}
	return s
}
