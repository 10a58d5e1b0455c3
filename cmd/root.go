package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/colorder/internal/accounts"
	"github.com/oakwood-commons/colorder/internal/config"
	"github.com/oakwood-commons/colorder/internal/filter"
	"github.com/oakwood-commons/colorder/internal/formatter"
	"github.com/oakwood-commons/colorder/internal/limiter"
	"github.com/oakwood-commons/colorder/internal/ui"
	"github.com/oakwood-commons/colorder/pkg/columns"
	"github.com/oakwood-commons/colorder/pkg/logger"
	"github.com/oakwood-commons/colorder/pkg/settings"
)

// rootOptions holds the flag values of one command tree.
type rootOptions struct {
	run         *settings.Run
	columns     columnListValue
	hide        columnListValue
	inputFormat string
	limit       limiter.Config
	debug       bool
	rowNumbers  bool
	height      int
	snapshot    bool
	press       []string
}

var rootCmd = newRootCmd()

// Execute runs the colorder command tree.
func Execute() error {
	return rootCmd.Execute()
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{run: settings.NewCliParams()}

	cmd := &cobra.Command{
		Use:   settings.CliBinaryName + " [file]",
		Short: "Show account rows under a configurable column order",
		Long: `colorder renders account rows (customer, bank name, account number,
available amount) using an ordered set of visible columns. The order comes
from the config file or --columns; --hide removes columns from it.

Input is a YAML/JSON list of accounts, or a CSV file whose header names the
columns. With no input the built-in sample accounts are shown.`,
		Example: `  colorder accounts.yaml
  colorder accounts.csv --columns amount,customer
  colorder accounts.yaml --hide account-number -o json
  cat accounts.yaml | colorder --filter 'row.amount > 1000'
  colorder -i`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runRoot(cmd, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.Var(&o.columns, "columns", "visible columns in display order, comma-separated (replaces the configured layout)")
	pf.Var(&o.hide, "hide", "columns to hide from the layout, comma-separated; repeatable")
	pf.StringVar(&o.run.ConfigFile, "config-file", "", "path to a YAML or TOML config file")
	pf.StringVarP(&o.run.Output, "output", "o", settings.OutputTable, "output format: "+strings.Join(settings.Outputs, "|"))
	pf.BoolVar(&o.debug, "debug", false, "enable debug logging on stderr")
	pf.BoolVar(&o.run.NoColor, "no-color", false, "disable color output")

	f := cmd.Flags()
	f.BoolVarP(&o.run.Interactive, "interactive", "i", false, "start the interactive table")
	f.StringVar(&o.run.Filter, "filter", "", "CEL predicate over 'row', e.g. 'row.amount > 100 && row.bank_name.startsWith(\"H\")'")
	f.StringVar(&o.inputFormat, "input-format", "", "input format: yaml|json|csv (default: by file extension, else yaml)")
	f.IntVar(&o.limit.Limit, "limit", 0, "show at most N rows")
	f.IntVar(&o.limit.Offset, "offset", 0, "skip the first N rows")
	f.IntVar(&o.limit.Tail, "tail", 0, "show the last N rows (excludes --limit; ignores --offset)")
	f.IntVar(&o.run.Width, "width", 0, "output width in columns (0 = terminal width or natural)")
	f.IntVar(&o.height, "height", 0, "interactive view height in rows (0 = terminal height)")
	f.BoolVar(&o.rowNumbers, "row-numbers", false, "prefix table rows with their index")
	f.BoolVar(&o.snapshot, "snapshot", false, "render one frame of the interactive table and exit")
	f.StringArrayVar(&o.press, "press", nil, "keys to apply before the first frame, e.g. --press \"<Right>x\"")
	_ = f.MarkHidden("snapshot")

	cmd.Version = cliVersionString(config.File{})
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(newVersionCmd(o), newColumnsCmd(o), newConfigCmd(o))
	return cmd
}

// setup validates shared flags and attaches the logger and run settings to
// the command context.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if o.debug {
		o.run.MinLogLevel = -1
	}
	if !settings.ValidOutput(o.run.Output) {
		return fmt.Errorf("invalid --output %q (expected %s)", o.run.Output, strings.Join(settings.Outputs, "|"))
	}

	lgr := logger.Get(o.run.MinLogLevel)
	lgr = logger.WithValues(lgr, logger.CommandKey, cmd.Name())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, lgr)
	ctx = settings.IntoContext(ctx, o.run)
	cmd.SetContext(ctx)
	return nil
}

// loadConfig loads the merged config for this run.
func (o *rootOptions) loadConfig() (config.File, map[columns.Column]formatter.ColumnHint, error) {
	cfg, err := config.Load(config.ResolvePath(o.run.ConfigFile))
	if err != nil {
		return config.File{}, nil, err
	}
	hints, err := cfg.Display.ColumnHints()
	if err != nil {
		return config.File{}, nil, err
	}
	return cfg, hints, nil
}

// applyLayout configures reg from the config layout, then the --columns and
// --hide flags. --columns replaces the configured order and its hidden list.
func (o *rootOptions) applyLayout(reg columns.Layout, cfg config.File) error {
	if err := cfg.Layout.Apply(reg); err != nil {
		return err
	}
	if o.columns.Changed() {
		if err := reg.Configure(o.columns.Columns()...); err != nil {
			return fmt.Errorf("--columns: %w", err)
		}
	}
	for _, c := range o.hide.Columns() {
		if err := reg.Hide(c); err != nil {
			return fmt.Errorf("--hide %s: %w", c.Key(), err)
		}
	}
	return nil
}

func (o *rootOptions) runRoot(cmd *cobra.Command, args []string) error {
	lgr := *logger.FromContext(cmd.Context())

	if err := o.limit.Validate(); err != nil {
		return err
	}
	cfg, hints, err := o.loadConfig()
	if err != nil {
		return err
	}

	rows, err := loadInput(cmd.InOrStdin(), args, o.inputFormat, lgr)
	if err != nil {
		return err
	}
	if expr := strings.TrimSpace(o.run.Filter); expr != "" {
		f, err := filter.Compile(expr)
		if err != nil {
			return fmt.Errorf("--filter: %w", err)
		}
		lgr.V(1).Info("compiled filter", "expression", f.String(), "fields", f.Fields())
		if rows, err = f.Apply(rows); err != nil {
			return fmt.Errorf("--filter: %w", err)
		}
	}

	rows = limiter.Apply(o.limit, rows)

	noColor := o.run.NoColor || cfg.Display.NoColorEnabled() || !isTerminalWriter(cmd.OutOrStdout())

	if o.run.Interactive || o.snapshot {
		reg := columns.NewSync(columns.WithLogger(lgr))
		if err := o.applyLayout(reg, cfg); err != nil {
			return err
		}
		return o.runInteractive(cmd, reg, rows, cfg, hints, noColor, lgr)
	}

	reg := columns.New(columns.WithLogger(lgr))
	if err := o.applyLayout(reg, cfg); err != nil {
		return err
	}
	visible, err := reg.VisibleColumnsInOrder()
	if err != nil {
		return err
	}

	width := o.run.Width
	if width <= 0 {
		width = cfg.Display.MaxWidthValue()
	}
	if width <= 0 && isTerminalWriter(cmd.OutOrStdout()) {
		width, _ = detectTerminalSize()
	}

	lgr.V(1).Info("rendering accounts", "output", o.run.Output, "columns", len(visible), "rows", len(rows), "width", width)
	out, err := renderAccounts(o.run.Output, visible, rows, formatter.TableOptions{
		NoColor:    noColor,
		MaxWidth:   width,
		RowNumbers: o.rowNumbers,
		Hints:      hints,
	})
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", o.run.Output, err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func (o *rootOptions) runInteractive(cmd *cobra.Command, reg columns.Layout, rows []accounts.Account, cfg config.File, hints map[columns.Column]formatter.ColumnHint, noColor bool, lgr logr.Logger) error {
	width, height := o.run.Width, o.height
	if width <= 0 || height <= 0 {
		dw, dh := detectTerminalSize()
		if width <= 0 {
			width = dw
		}
		if height <= 0 {
			height = dh
		}
	}

	m, err := ui.NewModel(reg, rows, ui.Options{
		AppName: cfg.App.Name,
		Hints:   hints,
		NoColor: noColor,
		Width:   width,
		Height:  height,
		Logger:  lgr,
	})
	if err != nil {
		return err
	}

	if o.snapshot {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), ui.Snapshot(m, o.press))
		return err
	}

	ui.ApplyKeys(m, o.press)
	opts, cleanup := programOptions()
	defer cleanup()
	return ui.Run(m, opts...)
}
