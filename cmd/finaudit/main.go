// Command finaudit watches a vault directory for financial PDF
// documents, structures their transactions through Gemini, converts
// amounts into the session base currency and appends them to a
// per-session audit ledger.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/subosito/gotenv"

	"github.com/dvloznov/finaudit/internal/extract"
	"github.com/dvloznov/finaudit/internal/fx"
	"github.com/dvloznov/finaudit/internal/ledger"
	"github.com/dvloznov/finaudit/internal/logger"
	"github.com/dvloznov/finaudit/internal/pipeline"
	"github.com/dvloznov/finaudit/internal/session"
	"github.com/dvloznov/finaudit/internal/structurer"
)

const defaultBaseCurrency = "PLN"

// baseCurrencies is the selection allowlist. Anything else falls back
// to the default.
var baseCurrencies = []string{"PLN", "USD", "EUR"}

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
)

func main() {
	_ = gotenv.Load()

	root := flag.String("root", ".", "Root directory holding vault/ and outputs/")
	base := flag.String("base", "", "Base currency (PLN, USD, EUR); prompts when omitted")
	workers := flag.Int("workers", pipeline.DefaultWorkerCount, "Concurrent document processing runs")
	flag.Parse()

	// Missing credential is the only fatal startup misconfiguration:
	// abort before any monitoring begins.
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, errStyle.Render("CRITICAL ERROR: GEMINI_API_KEY not set (environment or .env file)"))
		os.Exit(1)
	}

	baseCurrency := resolveBaseCurrency(*base)

	sess := session.New(time.Now(), baseCurrency, *root)
	if err := sess.EnsureDirs(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		os.Exit(1)
	}

	log, logFile, err := logger.NewSession(sess.LogPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		os.Exit(1)
	}
	defer logFile.Close()

	log.Info().Str("session", sess.ID).Str("base_currency", baseCurrency).Msg("SYSTEM INITIALIZED")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One rate fetch per session. Unavailability degrades to 1:1
	// conversion, it never aborts the run.
	fetchCtx, cancel := context.WithTimeout(ctx, fx.DefaultTimeout)
	rates, err := fx.NewClient().Fetch(fetchCtx, baseCurrency)
	cancel()
	if err != nil {
		log.Warn().Err(err).Msg("could not fetch FX rates, conversion disabled")
	} else {
		log.Info().Int("currencies", rates.Len()).Str("base", baseCurrency).Msg("live rates loaded")
	}
	sess.Rates = rates

	gemini, err := structurer.NewGeminiStructurer(ctx, apiKey)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize structuring client")
		os.Exit(1)
	}

	proc := pipeline.NewProcessor(
		sess,
		extract.NewPDFExtractor(),
		gemini,
		ledger.NewWriter(sess.LedgerPath(), baseCurrency),
		ledger.NewSnapshotStore(sess.OutputDir),
		log,
	)
	dispatcher := pipeline.NewDispatcher(proc, sess.VaultDir, *workers, pipeline.DefaultSettleDelay, log)

	fmt.Println(infoStyle.Render("→") + " watching " + sess.VaultDir)

	if err := dispatcher.Run(ctx); err != nil {
		log.Error().Err(err).Msg("monitoring failed")
		os.Exit(1)
	}

	log.Info().Msg("SHUTDOWN SEQUENCE COMPLETED")
}

// resolveBaseCurrency picks the session base currency: flag value when
// valid, otherwise an interactive selection on a terminal, otherwise
// the default.
func resolveBaseCurrency(flagValue string) string {
	if v := strings.ToUpper(strings.TrimSpace(flagValue)); v != "" {
		for _, c := range baseCurrencies {
			if v == c {
				return v
			}
		}
		fmt.Fprintln(os.Stderr, errStyle.Render("unsupported base currency "+v+", using "+defaultBaseCurrency))
		return defaultBaseCurrency
	}

	if !isTerminal() {
		return defaultBaseCurrency
	}

	selected := defaultBaseCurrency
	prompt := huh.NewSelect[string]().
		Title("Select base currency").
		Options(huh.NewOptions(baseCurrencies...)...).
		Value(&selected)
	if err := prompt.Run(); err != nil {
		return defaultBaseCurrency
	}
	return selected
}

func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
