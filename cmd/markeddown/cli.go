package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/markeddown"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Verbose bool

	Service markeddown.MarkdownService
	Fetcher markeddown.Fetcher
	Writer  markeddown.PageWriter

	// Cache is cleared by "cache clear" and, for convert, consulted before
	// URL sources are fetched.
	Cache markeddown.Cache

	// Config and CachePath are reported by "info".
	Config    markeddown.ConfigLoader
	CachePath string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log debug output and conversion stats to stderr"`

	Convert ConvertCmd `cmd:"" help:"Convert HTML files, URLs or stdin to Markdown"`
	Cache   CacheCmd   `cmd:"" help:"Manage the conversion cache"`
	Sample  SampleCmd  `cmd:"" help:"Convert a built-in sample page"`
	Info    InfoCmd    `cmd:"" help:"Show exclusion config and cache settings"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	Sources     []string      `arg:"" help:"File paths, http(s) URLs, or - for stdin"`
	Config      string        `short:"c" env:"MARKEDDOWN_CONFIG" help:"Exclusion config file (YAML)"`
	Context     string        `help:"Template context used to pick scoped exclusions, e.g. blog/_entry"`
	Extractor   string        `short:"e" enum:"selector,readability,trafilatura" default:"selector" help:"Content extractor (${enum})"`
	Repair      bool          `short:"r" help:"Repair broken links and images in the output"`
	Cache       bool          `help:"Cache conversions in SQLite"`
	Output      string        `short:"o" help:"Write one .md file per source to this directory"`
	Concurrency int           `short:"j" default:"4" help:"Sources converted in parallel"`
	Timeout     time.Duration `default:"10s" help:"HTTP request timeout"`
	RateLimit   float64       `default:"1" help:"Requests per second per host (0 disables)"`
}

// CacheCmd is the "cache" command group.
type CacheCmd struct {
	Clear CacheClearCmd `cmd:"" help:"Remove cached conversions"`
}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct {
	Expired bool `help:"Only remove expired entries"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct {
	Config  string `short:"c" env:"MARKEDDOWN_CONFIG" help:"Exclusion config file (YAML)"`
	Context string `help:"Template context whose scoped exclusions are listed"`
}

// SampleCmd is the "sample" subcommand.
type SampleCmd struct {
	Repair bool `short:"r" help:"Repair broken links and images in the output"`
}
