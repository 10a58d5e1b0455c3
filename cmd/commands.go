package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/colorder/internal/config"
	"github.com/oakwood-commons/colorder/internal/formatter"
	"github.com/oakwood-commons/colorder/pkg/columns"
	"github.com/oakwood-commons/colorder/pkg/logger"
	"github.com/oakwood-commons/colorder/pkg/settings"
)

// cliVersionString builds the version line for `colorder version` and
// --version.
func cliVersionString(cfg config.File) string {
	name := cfg.App.Name
	if name == "" {
		name = settings.CliBinaryName
	}
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, %s)", name, v.BuildVersion, v.Commit, runtime.Version())
}

func newVersionCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print colorder version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.ResolvePath(o.run.ConfigFile))
			if err != nil {
				cfg = config.File{}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cliVersionString(cfg))
			return err
		},
	}
}

// columnStatus is one line of `colorder columns`.
type columnStatus struct {
	Key      string `yaml:"key" json:"key"`
	Label    string `yaml:"label" json:"label"`
	Visible  bool   `yaml:"visible" json:"visible"`
	Position *int   `yaml:"position,omitempty" json:"position,omitempty"`
}

func newColumnsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List every column and where the current layout places it",
		Long: `List every known column with its key, label, visibility and position.
Visible columns come first in display order, followed by hidden ones. The
layout is the config layout with --columns and --hide applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runColumns(cmd)
		},
	}
}

func (o *rootOptions) runColumns(cmd *cobra.Command) error {
	lgr := *logger.FromContext(cmd.Context())
	cfg, _, err := o.loadConfig()
	if err != nil {
		return err
	}
	reg := columns.New(columns.WithLogger(lgr))
	if err := o.applyLayout(reg, cfg); err != nil {
		return err
	}
	statuses, err := layoutStatus(reg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch o.run.Output {
	case settings.OutputTable:
		cells := make([][]string, len(statuses))
		for i, s := range statuses {
			pos := "-"
			if s.Position != nil {
				pos = strconv.Itoa(*s.Position)
			}
			cells[i] = []string{s.Key, s.Label, strconv.FormatBool(s.Visible), pos}
		}
		_, err = fmt.Fprint(out, formatter.RenderGrid(
			[]string{"KEY", "LABEL", "VISIBLE", "POSITION"},
			cells,
			[]formatter.ColumnHint{{}, {}, {}, {Align: "right"}},
			formatter.TableOptions{NoColor: o.run.NoColor || !isTerminalWriter(out)},
		))
		return err
	case settings.OutputYAML:
		data, err := yaml.Marshal(statuses)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case settings.OutputJSON:
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	default:
		return fmt.Errorf("columns supports -o table|yaml|json, not %q", o.run.Output)
	}
}

// layoutStatus reports every column: visible ones in display order, then the
// hidden ones in declaration order.
func layoutStatus(reg columns.Layout) ([]columnStatus, error) {
	visible, err := reg.VisibleColumnsInOrder()
	if err != nil {
		return nil, err
	}
	out := make([]columnStatus, 0, columns.Count)
	for _, c := range visible {
		pos, _, err := reg.Position(c)
		if err != nil {
			return nil, err
		}
		out = append(out, columnStatus{Key: c.Key(), Label: c.Label(), Visible: true, Position: &pos})
	}
	for _, c := range columns.All() {
		ok, err := reg.IsVisible(c)
		if err != nil {
			return nil, err
		}
		if !ok {
			out = append(out, columnStatus{Key: c.Key(), Label: c.Label()})
		}
	}
	return out, nil
}

func newConfigCmd(o *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect colorder configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show the merged configuration (-o yaml|toml)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := config.Load(config.ResolvePath(o.run.ConfigFile))
				if err != nil {
					return err
				}
				format, err := configOutputFormat(o.run.Output)
				if err != nil {
					return err
				}
				data, err := config.Encode(cfg, format)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:   "default",
			Short: "Print the built-in default configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := cmd.OutOrStdout().Write(config.DefaultConfigYAML())
				return err
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file that would be loaded",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path := config.ResolvePath(o.run.ConfigFile)
				if path == "" {
					path = "(built-in defaults)"
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
				return err
			},
		},
	)
	return configCmd
}

// configOutputFormat maps -o to a config encoding. The root default of
// "table" means YAML here.
func configOutputFormat(output string) (string, error) {
	switch output {
	case settings.OutputTable, settings.OutputYAML:
		return "yaml", nil
	case settings.OutputTOML:
		return "toml", nil
	default:
		return "", fmt.Errorf("config supports -o yaml|toml, not %q", output)
	}
}
