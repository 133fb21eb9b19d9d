// Package cli implements the atomsense command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/AtomSense/internal/config"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds the global flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Output     string
	Verbose    bool
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config *config.Config
	Logger logging.Logger
	Output string
}

type cliContextKey struct{}

// NewRootCommand builds the root command with global flags and every
// subcommand mounted.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "atomsense",
		Short:   "AtomSense — atom type perception for molecular graphs",
		Long:    "AtomSense classifies every atom of a molecule against a reference\ndictionary of atom types, reading MDL molfiles and SD files.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initContext(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./atomsense.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.Output, "output", "o", "table", "output format (table, json)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose logging")

	cmd.AddCommand(
		NewPerceiveCmd(),
		NewTypesCmd(),
		NewRenderCmd(),
		NewSimilarCmd(),
	)
	return cmd
}

func initContext(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	level := logging.Level(strings.ToLower(opts.LogLevel))
	if opts.Verbose {
		level = logging.LevelDebug
	}
	log, err := logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, &CLIContext{
		Config: cfg,
		Logger: log,
		Output: strings.ToLower(opts.Output),
	}))
	return nil
}

// loadConfig resolves the file with flag > working directory > home > /etc
// precedence, and falls back to pure defaults when none exists.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}

	search := []string{"./atomsense.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		search = append(search, filepath.Join(home, ".atomsense", "config.yaml"))
	}
	search = append(search, "/etc/atomsense/config.yaml")
	for _, p := range search {
		if _, err := os.Stat(p); err == nil {
			return config.LoadFromFile(p)
		}
	}

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg, nil
}

// GetCLIContext extracts the initialized context from a command.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	if cmd.Context() == nil {
		return nil, errors.New(errors.ErrCodeInternal, "command context is nil")
	}
	cliCtx, ok := cmd.Context().Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New(errors.ErrCodeInternal, "command context is not initialized")
	}
	return cliCtx, nil
}

// Execute runs the CLI and reports failures on stderr.
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// printJSON writes indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
