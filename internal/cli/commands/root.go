package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ffibind/ffibind/internal/cli/config"
	"github.com/ffibind/ffibind/internal/cli/ui"
	"github.com/ffibind/ffibind/internal/dataclass"
	"github.com/ffibind/ffibind/internal/foreign"
	"github.com/ffibind/ffibind/internal/logging"
	"github.com/ffibind/ffibind/internal/manifest"
	"github.com/ffibind/ffibind/internal/utils"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalFlags holds the persistent flags shared by every subcommand
type globalFlags struct {
	configPath string
	manifests  []string
	format     string
	noColor    bool
	logLevel   string
}

// session is the loaded state a subcommand works against
type session struct {
	cfg     *config.Config
	logger  *zap.Logger
	classes *dataclass.Registry
	loaded  []*manifest.Manifest
	format  string
	noColor bool
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "ffibind",
		Short: "Declarative class bindings over native object types",
		Long: color.CyanString(`ffibind - dataclass-style bindings for foreign objects

ffibind loads class manifests that declare native types and the
classes bound to them, then synthesizes each class constructor:
positional-or-keyword parameters first, keyword-only parameters after.

Configuration is read from ffibind.yaml (or --config) and FFIBIND_*
environment variables.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to ffibind.yaml")
	pf.StringArrayVarP(&flags.manifests, "manifest", "m", nil, "Class manifest file or directory to load (repeatable)")
	pf.StringVar(&flags.format, "format", "", "Output format: table or json")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newClassesCommand(flags))
	rootCmd.AddCommand(newSignatureCommand(flags))
	rootCmd.AddCommand(newNewCommand(flags))
	rootCmd.AddCommand(newManifestCommand(flags))

	return rootCmd
}

// load reads configuration, builds the logger and applies every manifest.
// Flags that were set explicitly override configuration values.
func (f *globalFlags) load(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err, f.noColor))
		return nil, &reportedError{err: err}
	}

	s := &session{
		cfg:     cfg,
		format:  cfg.Output.Format,
		noColor: !cfg.Output.Color,
	}
	if f.format != "" {
		if f.format != "table" && f.format != "json" {
			return nil, fmt.Errorf("--format must be 'table' or 'json', got: %s", f.format)
		}
		s.format = f.format
	}
	if f.noColor {
		s.noColor = true
	}

	level := cfg.Log.Level
	if f.logLevel != "" {
		level = f.logLevel
	}
	s.logger, err = logging.New(level)
	if err != nil {
		return nil, err
	}

	s.classes = dataclass.NewRegistry(foreign.NewRegistry(), dataclass.WithLogger(s.logger))
	paths, err := utils.ExpandManifestPaths(append(cfg.ManifestPaths(), f.manifests...))
	if err != nil {
		return nil, err
	}
	loader := manifest.NewLoader(s.classes)
	if err := loader.LoadFiles(paths...); err != nil {
		return nil, s.report(cmd, err, nil)
	}
	s.loaded = loader.Manifests()
	s.logger.Debug("manifests loaded",
		zap.Strings("paths", paths),
		zap.Int("classes", s.classes.Count()),
	)
	return s, nil
}

// close flushes the session logger
func (s *session) close() {
	_ = s.logger.Sync()
}

// class looks up a class, reporting close matches when it is unknown
func (s *session) class(cmd *cobra.Command, name string) (*dataclass.Class, error) {
	if c, ok := s.classes.Get(name); ok {
		return c, nil
	}
	err := fmt.Errorf("class %q is not defined", name)
	if s.format == "json" {
		writeJSONError(cmd, "not_found", err.Error())
	} else {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ClassNotFoundError(name, s.classes.List(), s.noColor))
	}
	return nil, &reportedError{err: err}
}

// report renders err on stderr in the session's format and marks it as
// already reported
func (s *session) report(cmd *cobra.Command, err error, candidates []string) error {
	if s.format == "json" {
		var cfgErr *dataclass.ConfigurationError
		var typeErr *dataclass.TypeError
		switch {
		case errors.As(err, &cfgErr):
			writeJSON(cmd.ErrOrStderr(), cfgErr)
		case errors.As(err, &typeErr):
			writeJSON(cmd.ErrOrStderr(), typeErr)
		default:
			writeJSONError(cmd, "error", err.Error())
		}
	} else {
		fmt.Fprint(cmd.ErrOrStderr(), ui.DataclassError(err, candidates, s.noColor))
	}
	return &reportedError{err: err}
}

func writeJSONError(cmd *cobra.Command, kind, message string) {
	writeJSON(cmd.ErrOrStderr(), map[string]string{"kind": kind, "message": message})
}

// reportedError wraps an error whose message has already been written
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the ffibind version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			kv := ui.NewKeyValueTable(cmd.OutOrStdout(), color.NoColor)
			kv.AddRow("ffibind version", Version)
			kv.AddRow("Git commit", GitCommit)
			kv.AddRow("Build date", BuildDate)
			kv.AddRow("Go version", goVer)
			kv.Render()
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			errorColor := color.New(color.FgRed, color.Bold)
			errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return err
	}
	return nil
}

func writeJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
