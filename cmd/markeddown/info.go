package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/markeddown"
	"github.com/fwojciec/markeddown/goquery"
)

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	cfg, err := deps.Config.LoadConfig()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	w := deps.Stdout
	fmt.Fprintf(w, "Config file:  %s\n", orNone(c.Config))
	fmt.Fprintf(w, "Cache file:   %s\n", deps.CachePath)
	fmt.Fprintf(w, "Cache TTL:    %s\n", markeddown.DefaultCacheTTL)
	fmt.Fprintf(w, "Built-in exclusions: %s\n", strings.Join(goquery.BuiltinExclusions, ", "))

	if c.Context == "" {
		fmt.Fprintln(w, "Exclusions:")
	} else {
		fmt.Fprintf(w, "Exclusions for %s:\n", c.Context)
	}
	selectors := cfg.SelectorsFor(c.Context)
	if len(selectors) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, sel := range selectors {
		fmt.Fprintf(w, "  %s\n", sel)
	}

	if cfg != nil && len(cfg.TemplateExclusions) > 0 {
		fmt.Fprintln(w, "Scoped patterns:")
		for _, scoped := range cfg.TemplateExclusions {
			fmt.Fprintf(w, "  %s (%d selectors)\n", scoped.Pattern, len(scoped.Selectors))
		}
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
