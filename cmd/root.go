package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/studynav/internal/config"
	"github.com/abhisek/studynav/internal/logging"
	"github.com/abhisek/studynav/internal/store"
)

// Populated by PersistentPreRunE for every command.
var (
	cfg       config.Config
	logger    *logrus.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "studynav",
	Short: "Terminal study companion",
	Long:  "StudyNav: course roadmaps, adaptive quizzes and a study copilot in your terminal.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides db_path and STUDYNAV_DB_PATH)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML, TOML or JSON config file")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env, the config and the file logger.
func setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "Warning: could not read .env:", err)
	}

	file, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(file)
	if err != nil {
		return err
	}
	cfg = loaded

	l, closer, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: logging disabled:", err)
		l, closer = logging.Discard(), nil
	}
	logger, logCloser = l, closer
	logger.WithField("command", cmd.CommandPath()).Debug("starting")
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then db_path from the config, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the history store.
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
