package cmd

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/squid-search/internal/filter"
	"github.com/atikulmunna/squid-search/internal/output"
	"github.com/atikulmunna/squid-search/internal/pattern"
	"github.com/atikulmunna/squid-search/internal/source"
	"github.com/atikulmunna/squid-search/internal/timespan"
)

// searchOptions is the resolved configuration for one run.
type searchOptions struct {
	File      string
	NewerThan time.Duration
	Method    string
	Unique    bool
	Now       func() time.Time
}

// loadOptions reads flag, environment and config file values from v.
func loadOptions(v *viper.Viper) (searchOptions, error) {
	window, err := timespan.Parse(v.GetString("newer_than"))
	if err != nil {
		return searchOptions{}, fmt.Errorf("invalid --newer-than: %w", err)
	}

	return searchOptions{
		File:      v.GetString("file"),
		NewerThan: window,
		Method:    v.GetString("method"),
		Unique:    v.GetBool("unique"),
		Now:       time.Now,
	}, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Usage: %s PATTERN [PATTERN...]\n", cmd.Name())
		return nil
	}

	opts, err := loadOptions(viper.GetViper())
	if err != nil {
		return err
	}

	patterns := pattern.ParseAll(args)
	return search(opts, patterns, output.NewTextRenderer(cmd.OutOrStdout(), patterns))
}

// search reads the configured log, keeps entries inside the time window and
// renders the URLs that match. Any read or parse failure aborts the run
// before anything is printed.
func search(opts searchOptions, patterns []pattern.Pattern, renderer output.Renderer) error {
	paths, err := source.Resolve(opts.File)
	if err != nil {
		return err
	}
	log.Debugf("[search] reading %v", paths)
	for _, p := range patterns {
		log.WithField("position", p.Position).Debugf("[search] pattern %s", p)
	}

	content, err := source.Read(paths)
	if err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}

	cutoff := filter.Cutoff(opts.Now(), opts.NewerThan)
	log.Debugf("[search] cutoff %s (newer than %s)", cutoff.Format(time.RFC3339), timespan.Format(opts.NewerThan))

	matched, sum, err := filter.Search(content, cutoff, opts.Method, patterns, opts.Unique)
	if err != nil {
		return fmt.Errorf("failed to parse log: %w", err)
	}
	log.WithFields(log.Fields{
		"parsed":   sum.Parsed,
		"retained": sum.Retained,
		"matched":  sum.Matched,
	}).Debug("[search] done")

	return output.RenderAll(renderer, matched)
}

