package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/colresize/internal/config"
	"github.com/oakwood-commons/colresize/internal/limiter"
	"github.com/oakwood-commons/colresize/internal/ui"
	"github.com/oakwood-commons/colresize/pkg/loader"
	"github.com/oakwood-commons/colresize/pkg/logger"
	"github.com/oakwood-commons/colresize/pkg/resize"
	"github.com/oakwood-commons/colresize/pkg/settings"
)

// errNoInput is returned when neither a file nor piped stdin is given.
var errNoInput = errors.New("no input provided: pass a file or pipe a table document")

var (
	modeFlag       string
	minWidthFlag   int
	thresholdFlag  int
	inputFormat    string
	snapshotWidth  int
	snapshotHeight int
	noColor        bool
	debug          bool
	logFile        string
	configFile     string
	renderSnapshot bool
	hideFooter     bool
	startKeys      []string

	limitRows  int
	offsetRows int
	tailRows   int
)

var (
	rootCtx      = context.Background()
	closeLogFile = func() {}
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "Interactive, keyboard accessible column resizing for tables",
	Long: `colresize opens a table document in the terminal and lets you resize its
columns by dragging the header boundaries with the mouse or by focusing a
boundary with tab and using the arrow keys.

Documents may be YAML, JSON, NDJSON, TOML or CSV. A mapping with a "rows" key
can declare multi-row headers with spans and a resize mode.`,
	Example: "\n  colresize people.csv\n  colresize report.yaml --mode distribute\n  kubectl get pods -o json | colresize\n  colresize people.csv --snapshot --width 60 --press '<Tab>lll'\n",
	Args:    cobra.MaximumNArgs(1),
	// main prints the error; usage is only shown for missing input.
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		run := settings.NewCliParams()
		run.LogFile = logFile
		run.NoColor = noColor
		run.Snapshot = renderSnapshot
		run.Interactive = cmd == cmd.Root() && !renderSnapshot
		// debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
		if debug {
			run.MinLogLevel = -1
		}

		sink, err := logSink(run)
		if err != nil {
			return err
		}
		lgr := logger.Setup(logger.Options{Level: run.MinLogLevel, Output: sink})
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(settings.IntoContext(context.Background(), run), lgr)
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		logger.Sync()
		closeLogFile()
		closeLogFile = func() {}
	},
	RunE: runRoot,
}

// logSink picks where records go: the log file when given, stderr when no
// terminal UI owns the screen, nowhere otherwise.
func logSink(run *settings.Run) (zapcore.WriteSyncer, error) {
	if run.LogFile != "" {
		ws, closeFn, err := logger.OpenFile(run.LogFile)
		if err != nil {
			return nil, err
		}
		closeLogFile = closeFn
		return ws, nil
	}
	if run.LogToStderr() {
		return zapcore.Lock(os.Stderr), nil
	}
	return zapcore.AddSync(io.Discard), nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	lgr := logger.FromContext(rootCtx)

	cfg, err := config.Load(config.ResolvePath(configFile))
	if err != nil {
		return err
	}
	resizeCfg, err := resizeConfigFromFlags(cmd, cfg)
	if err != nil {
		return err
	}
	window := limiter.Config{Limit: limitRows, Offset: offsetRows, Tail: tailRows}
	if err := window.Validate(); err != nil {
		return err
	}

	doc, source, err := loadDocument(cmd, args)
	if errors.Is(err, errNoInput) {
		_ = cmd.Help()
		return err
	}
	if err != nil {
		return err
	}
	doc.Rows = limitRowsOf(doc, window)
	lgr.V(1).Info("table loaded", logger.TableKey, source,
		"columns", doc.Columns(), "rows", len(doc.Rows), "mode", string(resizeCfg.Mode))

	appName := cfg.App.Name
	if appName == "" {
		appName = settings.CliBinaryName
	}
	opts := ui.Options{
		AppName:  appName,
		Document: doc,
		Resize:   resizeCfg,
		Theme:    cfg.UI.Theme,
		NoColor:  noColor || cfg.NoColor(),
		ShowHelp: cfg.ShowHelp(),
		Width:    snapshotWidth,
		Height:   snapshotHeight,
		Logger:   logger.WithValues(lgr, logger.TableKey, source).WithName("resize"),
	}

	if renderSnapshot {
		size := resolveSnapshotSize(snapshotWidth, snapshotHeight, 0, 0)
		opts.Width, opts.Height = size.Width, size.Height
		out := ui.RenderSnapshot(ui.SnapshotConfig{Options: opts, StartKeys: trimmedKeys(startKeys), HideFooter: hideFooter})
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	progOpts, cleanup := getProgramOptions()
	defer cleanup()
	return ui.Run(opts, trimmedKeys(startKeys), progOpts...)
}

// resizeConfigFromFlags overlays explicitly set flags on the configured
// resize settings.
func resizeConfigFromFlags(cmd *cobra.Command, cfg config.File) (resize.Config, error) {
	rc, err := cfg.ResizeConfig()
	if err != nil {
		return rc, err
	}
	flags := cmd.Flags()
	if flags.Changed("mode") {
		mode, err := resize.ParseMode(modeFlag)
		if err != nil {
			return rc, fmt.Errorf("--mode: %w", err)
		}
		rc.Mode = mode
	}
	if flags.Changed("min-width") {
		rc.MinWidth = minWidthFlag
	}
	if flags.Changed("threshold") {
		rc.DragThreshold = thresholdFlag
	}
	if err := rc.Validate(); err != nil {
		return rc, fmt.Errorf("invalid resize settings: %w", err)
	}
	return rc, nil
}

// limitRowsOf windows the body rows. A header-less document keeps its first
// row, which is shown as the header.
func limitRowsOf(doc loader.Table, window limiter.Config) [][]string {
	if len(doc.Headers) > 0 || len(doc.Rows) == 0 {
		return limiter.Apply(window, doc.Rows)
	}
	return append(doc.Rows[:1:1], limiter.Apply(window, doc.Rows[1:])...)
}

// loadDocument reads the table from the file argument or piped stdin. It
// also returns a name for the source used in logs.
func loadDocument(cmd *cobra.Command, args []string) (loader.Table, string, error) {
	format, err := loader.ParseFormat(inputFormat)
	if err != nil {
		return loader.Table{}, "", err
	}
	if len(args) == 1 && args[0] != "-" {
		doc, err := loader.LoadTableFile(args[0], format)
		return doc, args[0], err
	}
	in := cmd.InOrStdin()
	if in == os.Stdin && !stdinIsPiped() {
		return loader.Table{}, "", errNoInput
	}
	doc, err := loader.LoadTableReader(in, format)
	if err != nil {
		return loader.Table{}, "", fmt.Errorf("stdin: %w", err)
	}
	return doc, "stdin", nil
}

func init() { //nolint:gochecknoinits
	flags := rootCmd.Flags()
	flags.StringVar(&modeFlag, "mode", "", "resize mode: shift|distribute (default from config or the document)")
	flags.IntVar(&minWidthFlag, "min-width", 0, "minimum column width in cells (default from config)")
	flags.IntVar(&thresholdFlag, "threshold", 0, "cells the pointer must travel before a press becomes a drag (default from config)")
	flags.StringVarP(&inputFormat, "format", "f", "", "input format: auto|yaml|json|ndjson|toml|csv (default from the file extension)")
	flags.IntVar(&snapshotWidth, "width", 0, "table width in columns (default: terminal width)")
	flags.IntVar(&snapshotHeight, "height", 0, "screen height in rows (default: terminal height)")
	flags.IntVar(&limitRows, "limit", 0, "show at most this many body rows")
	flags.IntVar(&offsetRows, "offset", 0, "skip the first N body rows")
	flags.IntVar(&tailRows, "tail", 0, "show only the last N body rows (excludes --limit; ignores --offset)")
	flags.BoolVar(&noColor, "no-color", false, "disable color output")
	flags.BoolVar(&renderSnapshot, "snapshot", false, "render a single frame and exit; honors --width/--height and --press")
	flags.BoolVar(&hideFooter, "hide-footer", false, "omit the status and help lines from --snapshot output")
	flags.StringArrayVar(&startKeys, "press", nil, "simulate input on startup. Keys: <Tab> <S-Tab> <Left> <Right> <S-Left> <S-Right> <Up> <Down> <Esc>; "+
		"mouse: <press:X,Y> <move:X,Y> <release:X,Y>. Literal text types normally, e.g. --press '<Tab>lll'")

	persistent := rootCmd.PersistentFlags()
	persistent.BoolVar(&debug, "debug", false, "log at debug level")
	persistent.StringVar(&logFile, "log-file", "", "append JSON log records to this file")
	persistent.StringVar(&configFile, "config-file", "", "path to a YAML config file (default $XDG_CONFIG_HOME/colresize/config.yaml)")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with args and IO, for embedding and tests.
func ExecuteContext(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()
	return rootCmd.ExecuteContext(ctx)
}

func trimmedKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
