package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/squid-search/internal/source"
)

const envPrefix = "SQUID_SEARCH"

var cfgFile string

// rootCmd is the only command; positional arguments are the URL patterns.
var rootCmd = &cobra.Command{
	Use:   "squid-search [flags] PATTERN [PATTERN...]",
	Short: "Find recently requested URLs in a Squid access log",
	Long: `squid-search scans a Squid access log, keeps the requests from the last
day (or --newer-than), and prints the URLs of GET requests that contain any
of the given patterns.

A pattern is a plain substring. Prefix it with ^ to match the start of the
URL, or suffix it with $ to match the end.

Examples:
  squid-search debian.org
  squid-search -n 2h '^https://' '.iso$'
  squid-search -f '/var/log/squid/**/access.log' --unique github`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runSearch,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.squid-search.yaml)")
	flags.StringP("file", "f", source.DefaultPath, "access log path or glob pattern")
	flags.StringP("newer-than", "n", "1d", "only consider entries newer than this span (e.g. 12h, 1d2h, 1w)")
	flags.StringP("method", "m", "GET", "HTTP method to match (exact, case-sensitive)")
	flags.BoolP("unique", "u", false, "print each URL only once")
	flags.String("log-level", "warn", "diagnostics level: debug, info, warn, error")

	for _, name := range []string{"file", "newer-than", "method", "unique", "log-level"} {
		cobra.CheckErr(viper.BindPFlag(configKey(name), flags.Lookup(name)))
	}
}

// configKey maps a flag name to its config file / environment key.
func configKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

func setup(cmd *cobra.Command, _ []string) error {
	v := viper.GetViper()
	if err := initConfig(v, cfgFile); err != nil {
		return err
	}
	if err := setupLogging(v.GetString("log_level"), cmd.ErrOrStderr()); err != nil {
		return err
	}
	if f := v.ConfigFileUsed(); f != "" {
		log.Debugf("[config] using %s", f)
	}
	return nil
}

// initConfig reads the optional YAML config file and enables environment
// overrides (SQUID_SEARCH_FILE, SQUID_SEARCH_NEWER_THAN, ...). A missing
// default config is fine; a missing explicit --config is an error.
func initConfig(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".squid-search")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// setupLogging configures the package-wide logrus logger. Diagnostics go to
// stderr so stdout carries nothing but URLs.
func setupLogging(levelName string, w io.Writer) error {
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(level)
	return nil
}
