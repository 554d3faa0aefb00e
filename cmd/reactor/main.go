package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/martinemde/reactor/reactor"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: reactor [flags] <question>\n\nAnswer a question through iterative reasoning and tool use.\n\nFlags:\n")
		flag.PrintDefaults()
	}

	configPath := flag.String("config", "", "path to YAML configuration file")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	model := flag.String("model", "", "model identifier (overrides config)")
	provider := flag.String("provider", "", "provider name: openai or anthropic (overrides config)")
	maxIterations := flag.Int("max-iterations", 0, "reasoning iteration budget (overrides config)")
	traceOut := flag.String("trace-out", "", "write the reasoning trace as JSON to this file")
	verbose := flag.Bool("verbose", false, "log completion and tool activity to stderr")
	flag.Parse()

	question := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if question == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(*configPath, *model, *provider, *maxIterations, *traceOut, *verbose, question); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadDotEnv loads environment variables from path. A missing file is fine;
// any other read error is not.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func run(configPath, model, provider string, maxIterations int, traceOut string, verbose bool, question string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := reactor.DefaultConfig()
	if configPath != "" {
		loaded, err := reactor.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if model != "" {
		cfg.Model = model
	}
	if provider != "" {
		cfg.Provider = provider
	}
	if maxIterations > 0 {
		cfg.MaxIterations = maxIterations
	}

	logger := slog.New(slog.DiscardHandler)
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	}

	trace := reactor.NewTrace("")
	trace.SetObserver(renderEntry)

	r, err := reactor.NewReactor(cfg,
		reactor.WithLogger(logger),
		reactor.WithTrace(trace),
	)
	if err != nil {
		return err
	}

	tavily := reactor.NewTavilyClient("")
	if err := reactor.RegisterWebSearchTools(r.Agent().Registry(), tavily); err != nil {
		return err
	}
	if err := reactor.RegisterFetchWebpage(r.Agent().Registry(), nil); err != nil {
		return err
	}

	result, _, runErr := r.RunLoop(ctx, question)

	if traceOut != "" {
		if err := trace.ExportFile(traceOut); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not write trace: %v\n", err)
		}
	}

	if runErr != nil {
		return runErr
	}

	fmt.Println()
	fmt.Println(answerPrefixStyle.Render("Answer:"))
	fmt.Println(answerBlockStyle.Render(fmt.Sprintf("%v", result["answer"])))
	return nil
}

// renderEntry prints one trace entry as it happens, so the reasoning chain is
// visible while the loop runs.
func renderEntry(e reactor.TraceEntry) {
	switch e.Kind {
	case reactor.TraceConversationStart:
		fmt.Println(questionPrefixStyle.Render("Question:"), e.Message)
	case reactor.TraceThought:
		fmt.Println(phaseStyle.Render("Thought:"), thinkingTextStyle.Render(e.Message))
	case reactor.TraceAction:
		fmt.Println(phaseStyle.Render("Action:"), toolNameStyle.Render(e.Message))
	case reactor.TraceObservation:
		fmt.Println(phaseStyle.Render("Observation:"), e.Message)
	case reactor.TraceToolResult:
		fmt.Println(treeCorner + toolResultStyle.Render(e.Message))
	case reactor.TraceWarning:
		fmt.Println(warnStyle.Render("Warning: " + e.Message))
	case reactor.TraceError:
		fmt.Println(toolErrorStyle.Render("Error: " + e.Message))
	}
}
