package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"suggestable/internal/config"
	"suggestable/internal/logger"
	"suggestable/internal/ui"
)

var (
	configFile string
	urlFlag    string
	fieldFlags []string
	minLength  int
	cacheSize  int
	timeout    time.Duration
	logFile    string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "suggestable",
	Short: "A form of inputs with suggestion dropdowns",
	Long: `suggestable shows one text input per configured field. Typing three or
more characters asks the field's endpoint for suggestions, which can be
picked with the arrow keys and Enter or with the mouse.`,
	SilenceUsage: true,
	RunE:         run,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := configService()
		if _, err := os.Stat(svc.Path()); err == nil {
			return fmt.Errorf("config file already exists: %s", svc.Path())
		}
		cfg := config.DefaultConfig()
		cfg.Fields = []config.Field{{
			ID:          "query",
			Label:       "Query",
			URL:         "http://localhost:8080/suggest",
			Placeholder: "type at least 3 characters",
		}}
		if err := svc.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), svc.Path())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a TOML or YAML config file")
	rootCmd.Flags().StringVarP(&urlFlag, "url", "u", "", "suggestion endpoint for a single field")
	rootCmd.Flags().StringArrayVarP(&fieldFlags, "field", "f", nil, "add a field as label=url (repeatable)")
	rootCmd.Flags().IntVar(&minLength, "min-length", 0, "minimum term length before fetching (default from config or 3)")
	rootCmd.Flags().IntVar(&cacheSize, "cache-size", 0, "bound each field's cache to N terms (0 = unbounded)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "per-request timeout (0 = none)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file (default from config)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log at debug level")
	rootCmd.AddCommand(initCmd)
}

func configService() config.ConfigService {
	if configFile != "" {
		return config.NewConfigServiceAt(configFile)
	}
	return config.NewConfigService()
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	svc := configService()
	if configFile != "" {
		c, err := svc.LoadFromPath(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	} else {
		c, err := svc.Load()
		if err != nil {
			log.Warn("Error loading config, using defaults", "path", svc.Path(), "err", err)
			c = config.DefaultConfig()
		}
		cfg = c
	}
	if cfg.Widget == nil {
		cfg.Widget = make(map[string]any)
	}

	if urlFlag != "" {
		cfg.Fields = []config.Field{{ID: "query", Label: "Query", URL: urlFlag}}
	}
	for _, s := range fieldFlags {
		f, err := config.ParseField(s)
		if err != nil {
			return nil, err
		}
		cfg.Fields = append(cfg.Fields, f)
	}

	flags := cmd.Flags()
	if flags.Changed("min-length") {
		cfg.Widget[config.KeyTermMinLength] = minLength
	}
	if flags.Changed("cache-size") {
		cfg.Widget[config.KeyCacheSize] = cacheSize
	}
	if flags.Changed("timeout") {
		cfg.Widget[config.KeyTimeout] = timeout
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	closeLog, err := logger.Setup(cfg.Log.File, logger.ParseLevel(cfg.Log.Level))
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	model := ui.NewModel(cfg, ui.WithContext(ctx))
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}

	for id, v := range model.Values() {
		log.Debug("final value", "field", id, "value", v)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
