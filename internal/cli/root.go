// Package cli implements the schemabuilder command line: the interactive
// editor by default, or a one-shot preview with --print.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flavono123/schemabuilder/internal/config"
	"github.com/flavono123/schemabuilder/internal/preview"
	"github.com/flavono123/schemabuilder/internal/schema"
	"github.com/flavono123/schemabuilder/internal/session"
	"github.com/flavono123/schemabuilder/internal/ui"
	"github.com/flavono123/schemabuilder/internal/ui/theme"
)

const debugLogFile = "debug.log"

var version = "dev"

// SetVersion sets the version printed by --version.
func SetVersion(v string) {
	version = v
}

type rootOptions struct {
	configPath string
	format     string
	idStrategy string
	themeName  string
	exportPath string
	example    bool
	print      bool
	verbose    bool

	closeLog func() error
}

// Execute runs the root command until the editor quits or ctx is done.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          config.AppID,
		Short:        "Build nested JSON field schemas in the terminal",
		Long:         `schemabuilder edits a tree of typed fields (String, Number, Nested) and previews the JSON object they describe as you type.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := openLogger(cmd, opts)
			if err != nil {
				return err
			}
			opts.closeLog = closeLog
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.closeLog == nil {
				return nil
			}
			return opts.closeLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default <user config dir>/schemabuilder/config.toml)")
	flags.StringVarP(&opts.format, "format", "f", "", "preview format: json, yaml, openapi or patch")
	flags.StringVar(&opts.idStrategy, "id", "", "field id strategy: uuid, snowflake or sequence")
	flags.StringVar(&opts.themeName, "theme", "", "catppuccin flavour: mocha, macchiato, frappe or latte")
	flags.StringVarP(&opts.exportPath, "output", "o", "", "file the preview is exported to (default schema.<ext>)")
	flags.BoolVar(&opts.example, "example", false, "start from the name/address example schema")
	flags.BoolVar(&opts.print, "print", false, "print the preview and exit instead of opening the editor")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	logger := loggerFromContext(cmd.Context())

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := theme.SetFlavour(cfg.Theme); err != nil {
		return err
	}
	ids, err := schema.NewIDGenerator(cfg.IDStrategy)
	if err != nil {
		return err
	}
	format, err := preview.ParseFormat(cfg.Preview.Format)
	if err != nil {
		return err
	}
	previewOpts := preview.Options{Format: format, Indent: cfg.Preview.Indent}

	s := session.New(session.Options{IDs: ids, Logger: logger, Example: opts.example})
	logger.Debug("session started", "id_strategy", cfg.IDStrategy, "format", format, "example", opts.example)

	if opts.print {
		text, err := preview.Render(preview.Input{Fields: s.Fields(), Previous: s.Previous()}, previewOpts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}

	program := tea.NewProgram(
		ui.NewModel(ui.Options{
			Session:    s,
			Preview:    previewOpts,
			ExportPath: cfg.ExportPath,
			Logger:     logger,
		}),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}

// loadConfig reads the config file and applies the flag overrides.
func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg := config.Default()

	path := opts.configPath
	if path == "" {
		// no user config dir means no config file
		path, _ = config.DefaultPath()
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if opts.format != "" {
		cfg.Preview.Format = opts.format
	}
	if opts.idStrategy != "" {
		cfg.IDStrategy = opts.idStrategy
	}
	if opts.themeName != "" {
		cfg.Theme = opts.themeName
	}
	if opts.exportPath != "" {
		cfg.ExportPath = opts.exportPath
	}
	return cfg, nil
}

// openLogger picks where logs go. With DEBUG set they are appended to
// debug.log; otherwise --print logs to stderr and the editor discards them.
func openLogger(cmd *cobra.Command, opts *rootOptions) (*log.Logger, func() error, error) {
	level := log.InfoLevel
	if opts.verbose {
		level = log.DebugLevel
	}

	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile(debugLogFile, "debug")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to log to file: %w", err)
		}
		return newLogger(f, log.DebugLevel), f.Close, nil
	}

	var w io.Writer = io.Discard
	if opts.print {
		w = cmd.ErrOrStderr()
	}
	return newLogger(w, level), nil, nil
}
