package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lookup/internal/domain"
	"github.com/kailas-cloud/lookup/internal/domain/query"
	"github.com/kailas-cloud/lookup/internal/form"
	logpkg "github.com/kailas-cloud/lookup/internal/logger"
	"github.com/kailas-cloud/lookup/internal/version"
	"github.com/kailas-cloud/lookup/pkg/client"
)

// Exit codes.
const (
	exitSuccess    = 0
	exitError      = 1
	exitValidation = 2
)

// CLI is the command structure for lookup-form.
type CLI struct {
	Version  kong.VersionFlag `help:"Show version." short:"V"`
	URL      string           `help:"Lookup service base URL." default:"http://localhost:8000" env:"LOOKUP_URL"`
	Email    string           `help:"Email to pre-fill, or to query with --plain." short:"e"`
	Number   string           `help:"Number (99-99-99) to pre-fill, or to query with --plain." short:"n"`
	Plain    bool             `help:"Query once and print plain text, even if stdout is a TTY."`
	Timeout  time.Duration    `help:"Request timeout in plain mode." default:"10s"`
	LogFile  string           `help:"File for diagnostics; empty disables logging." default:"lookup-form.log" type:"path"`
	LogLevel string           `help:"Log level." default:"info" enum:"debug,info,warn,error"`
}

// Run opens the interactive form, or runs a single query in plain mode.
func (c *CLI) Run() error {
	logger, err := logpkg.NewFileLogger(c.LogFile, c.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cl := client.New(client.WithBaseURL(c.URL))
	logger.Info("lookup-form started",
		zap.String("version", version.Version),
		zap.String("url", cl.BaseURL()),
		zap.Bool("plain", c.Plain),
	)

	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if c.Plain || !isTTY {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, c.Timeout)
		defer cancel()

		if err := runPlain(ctx, cl, c.Email, c.Number, os.Stdout); err != nil {
			logger.Error("plain search failed", zap.Error(err))
			return err
		}
		return nil
	}

	m := form.New(cl, logger).WithValues(c.Email, c.Number)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("form: %w", err)
	}
	return nil
}

// runPlain validates and runs one query, printing one line per record to out.
func runPlain(ctx context.Context, s form.Searcher, email, number string, out io.Writer) error {
	if _, err := query.New(email, number); err != nil {
		printFieldErrors(out, err)
		return err //nolint:wrapcheck // already a typed validation error
	}

	recs, err := s.Search(ctx, email, number)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			printFieldErrors(out, err)
			return err //nolint:wrapcheck // already a typed validation error
		}
		return fmt.Errorf("search: %w", err)
	}

	if len(recs) == 0 {
		_, _ = fmt.Fprintln(out, "No records found.")
		return nil
	}
	for _, r := range recs {
		_, _ = fmt.Fprintln(out, form.FormatRecord(r))
	}
	return nil
}

func printFieldErrors(out io.Writer, err error) {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return
	}
	for _, f := range ve.Fields {
		_, _ = fmt.Fprintf(out, "%s: %s\n", f.Field, f.Message)
	}
}

func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, domain.ErrValidation) {
		return exitValidation
	}
	return exitError
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("lookup-form"),
		kong.Description("Search the lookup service by email and number."),
		kong.Vars{"version": version.String()},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
