package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/markeddown"
	"github.com/fwojciec/markeddown/fs"
	"github.com/fwojciec/markeddown/goquery"
	"github.com/fwojciec/markeddown/htmltomarkdown"
	mdhttp "github.com/fwojciec/markeddown/http"
	"github.com/fwojciec/markeddown/pipeline"
	"github.com/fwojciec/markeddown/readability"
	mdslog "github.com/fwojciec/markeddown/slog"
	"github.com/fwojciec/markeddown/sqlite"
	"github.com/fwojciec/markeddown/trafilatura"
	"github.com/fwojciec/markeddown/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Cache database path. Set before calling Run().
	CachePath string

	// Stdin is read for the "-" source.
	Stdin io.Reader

	// SQLite database backing the conversion cache. Opened only by
	// commands that need it.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		CachePath: defaultCachePath(),
		Stdin:     os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("markeddown"),
		kong.Description("Convert HTML pages to clean Markdown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'markeddown --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger
	deps.Verbose = cli.Verbose

	cmd := kongCtx.Command()
	switch {
	case strings.HasPrefix(cmd, "convert"):
		opts := cli.Convert
		var cache markeddown.Cache
		if opts.Cache {
			c, err := m.openCache(stderr)
			if err != nil {
				return err
			}
			defer m.Close()
			cache = mdslog.NewLoggingCache(c, logger)
			deps.Cache = cache
		}

		deps.Service = newService(serviceOptions{
			ConfigPath: opts.Config,
			Extractor:  opts.Extractor,
			Repair:     opts.Repair,
			Cache:      cache,
		}, logger)

		fetcher := mdhttp.NewFetcher(
			mdhttp.WithTimeout(opts.Timeout),
			mdhttp.WithRateLimit(opts.RateLimit),
		)
		defer fetcher.Close()
		deps.Fetcher = mdslog.NewLoggingFetcher(fetcher, logger)

		if opts.Output != "" {
			deps.Writer = fs.NewWriter(opts.Output)
		}

	case strings.HasPrefix(cmd, "cache"):
		c, err := m.openCache(stderr)
		if err != nil {
			return err
		}
		defer m.Close()
		deps.Cache = c

	case strings.HasPrefix(cmd, "info"):
		deps.Config = yaml.NewConfigLoader(cli.Info.Config, logger)
		deps.CachePath = m.CachePath

	case strings.HasPrefix(cmd, "sample"):
		deps.Service = newService(serviceOptions{
			Extractor: extractorSelector,
			Repair:    cli.Sample.Repair,
		}, logger)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openCache(stderr io.Writer) (*sqlite.Cache, error) {
	m.DB = sqlite.NewDB(m.CachePath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set MARKEDDOWN_CACHE to use a different cache path\n")
		return nil, fmt.Errorf("failed to open cache at %q: %w", m.CachePath, err)
	}
	return sqlite.NewCache(m.DB), nil
}

const (
	extractorSelector    = "selector"
	extractorReadability = "readability"
	extractorTrafilatura = "trafilatura"
)

type serviceOptions struct {
	ConfigPath string
	Extractor  string
	Repair     bool
	Cache      markeddown.Cache
}

// newService wires the conversion pipeline. Every collaborator is wrapped
// in a logging decorator; the logger's level decides what is printed.
func newService(opts serviceOptions, logger *slog.Logger) markeddown.MarkdownService {
	var extractor markeddown.Extractor
	switch opts.Extractor {
	case extractorReadability:
		extractor = &goquery.ExclusionFilter{Extractor: readability.NewExtractor(), Logger: logger}
	case extractorTrafilatura:
		extractor = &goquery.ExclusionFilter{Extractor: trafilatura.NewExtractor(), Logger: logger}
	default:
		extractor = goquery.NewContentSelector(logger)
	}

	svc := pipeline.NewService(
		mdslog.NewLoggingExtractor(extractor, logger),
		mdslog.NewLoggingConverter(htmltomarkdown.NewConverter(), logger),
		yaml.NewConfigLoader(opts.ConfigPath, logger),
		logger,
	)
	svc.Repair = opts.Repair

	var service markeddown.MarkdownService = svc
	if opts.Cache != nil {
		service = pipeline.NewCachingService(service, opts.Cache, logger)
	}
	return mdslog.NewLoggingService(service, logger)
}

func defaultCachePath() string {
	if path := os.Getenv("MARKEDDOWN_CACHE"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "markeddown.db"
	}
	dir := filepath.Join(home, ".markeddown")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "cache.db")
}
