package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"allstock/internal/app"
	"allstock/internal/config"
	"allstock/internal/dashboard"
	"allstock/internal/logging"
	"allstock/internal/render"
)

// pipelineFactory is swapped in tests to avoid live sources.
var pipelineFactory = func(cfg config.Config) *dashboard.Pipeline {
	return app.NewPipeline(cfg, logging.New(cfg.Log))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		symbol     string
		asJSON     bool
		configPath string
		offline    bool
	)
	fs.StringVar(&symbol, "symbol", "", "symbol to look up once; omit for the interactive prompt")
	fs.BoolVar(&asJSON, "json", false, "print the raw result as JSON")
	fs.StringVar(&configPath, "config", "", "path to config.json (optional)")
	fs.BoolVar(&offline, "offline", false, "skip live sources and show sample data")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(stderr, "env: %v\n", err)
		return 1
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	if offline {
		cfg.Quotes.Enabled = false
		cfg.Rates.Enabled = false
		cfg.News.Enabled = false
	}
	if cfg.Log.Level == "info" {
		// The terminal is the UI; only warnings belong on stderr.
		cfg.Log.Level = "warn"
	}
	session := dashboard.NewSession(pipelineFactory(cfg))

	if symbol != "" || flagSet(fs, "symbol") {
		return once(ctx, session, symbol, asJSON, stdout, stderr)
	}
	return prompt(ctx, session, cfg.Presets, asJSON, stdin, stdout)
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func once(ctx context.Context, session *dashboard.Session, raw string, asJSON bool, stdout, stderr io.Writer) int {
	res, err := session.Search(ctx, raw)
	if err != nil {
		_ = render.Error(stderr, render.Message(err))
		return 1
	}
	if err := printResult(stdout, res, asJSON); err != nil {
		fmt.Fprintf(stderr, "output: %v\n", err)
		return 1
	}
	return 0
}

func printResult(w io.Writer, res dashboard.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return render.Text(w, render.NewView(res))
}

// prompt reads one search per line. A newer line cancels the search still in
// flight; superseded results are dropped silently.
func prompt(ctx context.Context, session *dashboard.Session, presets []string, asJSON bool, stdin io.Reader, stdout io.Writer) int {
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	printf := func(format string, a ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(stdout, format, a...)
	}

	printf("%s\n", presetLine(presets))
	printf("Type a symbol or a shortcut number, \"quit\" to exit.\n> ")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			input := resolveInput(line, presets)
			if strings.EqualFold(input, "quit") || strings.EqualFold(input, "exit") {
				break loop
			}
			if strings.TrimSpace(input) == "" {
				mu.Lock()
				_ = render.Error(stdout, render.EmptySymbolMessage)
				fmt.Fprint(stdout, "> ")
				mu.Unlock()
				continue
			}

			printf("Loading data…\n")
			wg.Add(1)
			go func(raw string) {
				defer wg.Done()
				res, err := session.Search(ctx, raw)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case errors.Is(err, dashboard.ErrSuperseded):
					return
				case err != nil:
					_ = render.Error(stdout, render.Message(err))
				default:
					_ = printResult(stdout, res, asJSON)
				}
				fmt.Fprint(stdout, "> ")
			}(input)
		}
	}
	wg.Wait()
	printf("\n")
	return 0
}

// resolveInput maps a shortcut number to its preset symbol.
func resolveInput(line string, presets []string) string {
	s := strings.TrimSpace(line)
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(presets) {
		return presets[n-1]
	}
	return s
}

func presetLine(presets []string) string {
	parts := make([]string, len(presets))
	for i, p := range presets {
		parts[i] = fmt.Sprintf("[%d] %s", i+1, p)
	}
	return "Shortcuts: " + strings.Join(parts, "  ")
}
