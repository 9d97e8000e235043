package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"suggestable/internal/devserver"
	"suggestable/internal/logger"
)

var (
	addr      string
	wordsFile string
	limit     int
	delay     time.Duration
	termParam string
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:          "suggestd",
	Short:        "Serve suggestions from a word list",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	rootCmd.Flags().StringVarP(&wordsFile, "words", "w", "", "word list, YAML or one tab-separated entry per line (default: built-in sample)")
	rootCmd.Flags().IntVarP(&limit, "limit", "n", devserver.DefaultLimit, "maximum suggestions per response")
	rootCmd.Flags().DurationVar(&delay, "delay", 0, "hold every response back by this long")
	rootCmd.Flags().StringVar(&termParam, "term-param", "term", "query parameter carrying the term")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log every request")
}

func run(cmd *cobra.Command, args []string) error {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	logger.Configure(os.Stderr, level)
	l := logger.New("suggestd")

	entries := devserver.SampleEntries
	if wordsFile != "" {
		loaded, err := devserver.LoadFile(wordsFile)
		if err != nil {
			return err
		}
		entries = loaded
	}
	idx := devserver.NewIndex(entries...)

	opts := devserver.DefaultOptions()
	opts.Limit = limit
	opts.Delay = delay
	opts.TermParam = termParam
	e := devserver.New(idx, opts, l)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		l.Info("listening", "addr", addr, "entries", idx.Len())
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	l.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
