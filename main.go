package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"health_tracker/internal"
	"health_tracker/internal/config"
	"health_tracker/internal/logging"
	"health_tracker/internal/logstore"
	"health_tracker/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flagBackend string
	flagDB      string
	flagKey     string
	flagLogFile string
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:           "health_tracker",
	Short:         "Record daily health metrics in the terminal",
	Long:          `Track weight, exercise, sleep, water intake, heart rate, blood pressure, blood sugar and calories burned.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTracker,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBackend, "backend", "", "storage backend: sqlite, bolt or memory")
	pf.StringVar(&flagDB, "db", "", "database file path")
	pf.StringVar(&flagKey, "key", "", "storage key the logs are kept under")
	pf.StringVar(&flagLogFile, "log-file", "", "write application logs to this file")
	pf.BoolVar(&flagDebug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(clearCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the recorded logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if s.store.Len() == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No logs to display")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), internal.RenderHistory(s.store.All()))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the stored logs as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		data, err := json.MarshalIndent(s.store.All(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode logs: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded log",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		n := s.store.Len()
		if err := s.store.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d logs from %q\n", n, s.store.Key())
		return nil
	},
}

func runTracker(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	m := internal.NewModel(s.store, internal.WithLogger(s.logger))
	p := tea.NewProgram(m, tea.WithAltScreen())

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-ticker.C:
				p.Send(internal.MsgTick{})
			case <-done:
				return
			}
		}
	}()

	s.logger.Info("health tracker starting", "backend", s.cfg.Backend, "entries", s.store.Len())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	s.logger.Info("health tracker exited")
	return nil
}

type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *logstore.Store
	closers []io.Closer
}

// Close releases storage before the log file and returns the first error.
func (s *session) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			s.logger.Warn("failed to close session resource", "error", err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = flagBackend
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDB
	}
	if flags.Changed("key") {
		cfg.StorageKey = flagKey
	}
	if flags.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	if flags.Changed("debug") {
		cfg.Debug = flagDebug
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	kv, err := storage.Open(cfg.Backend, cfg.DBPath)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	s.closers = append(s.closers, kv)

	s.store = logstore.New(kv, logstore.WithKey(cfg.StorageKey), logstore.WithLogger(logger))
	if err := s.store.Load(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
