// Package cli provides the pgschema command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pgschema-labs/pgschema/internal/config"
	"github.com/pgschema-labs/pgschema/pkg/schema"
	"github.com/spf13/cobra"
)

// Version information (set at build time via -ldflags).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

type configKey struct{}
type loggerKey struct{}

// NewRootCmd builds the root pgschema command and its subcommands.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pgschema",
		Short: "pgschema - template-driven PostgreSQL schema expansion",
		Long: `pgschema expands parameterized schema template files into concrete
SQL or XML fragments by resolving attribute references, evaluating
conditional blocks, and executing inline directives.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile, schema.DefaultVersion, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if v, _ := cmd.Root().PersistentFlags().GetString("pgsql-version"); v != "" {
				cfg.DefaultVersion = v
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			var handler slog.Handler
			if cfg.Output == "json" {
				handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			} else {
				handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			}
			logger = slog.New(handler)

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./pgschema.yaml)")
	root.PersistentFlags().String("schemas-root", "", "root directory of <kind>/<name>.sch schema files")
	root.PersistentFlags().String("pgsql-version", "", "target PostgreSQL version (e.g. 15.4)")
	root.PersistentFlags().Bool("ignore-unknown-attributes", false, "treat unknown {attr} references as empty instead of raising unknown-attribute (emitting an empty value still needs --ignore-empty-attributes)")
	root.PersistentFlags().Bool("ignore-empty-attributes", false, "allow emitting an empty attribute value without erroring")
	root.PersistentFlags().StringP("output", "o", "", "output format (text|json)")
	root.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")

	root.AddCommand(
		newExpandCommand(),
		newExpandObjectCommand(),
		newAttrsCommand(),
		newAttrsBatchCommand(),
		newWatchCommand(),
		newServeCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the loaded config from a command's context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{SchemasRoot: config.DefaultSchemasRoot, DefaultVersion: schema.DefaultVersion}
}

// GetLogger retrieves the request-scoped logger from a command's context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// newParserFromConfig builds a *schema.Parser configured from cfg, applying
// a per-call version override when explicitly set.
func newParserFromConfig(cfg *config.Config, versionOverride string) (*schema.Parser, error) {
	p := schema.NewParser()
	version := cfg.DefaultVersion
	if versionOverride != "" {
		version = versionOverride
	}
	if version != "" {
		if err := p.SetVersion(version); err != nil {
			return nil, err
		}
	}
	p.IgnoreUnknown(cfg.IgnoreUnknownAttributes)
	p.IgnoreEmpty(cfg.IgnoreEmptyAttributes)
	return p, nil
}
