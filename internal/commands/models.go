// internal/commands/models.go
package qmlc

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/CodeMeister99/QML-Compare/internal/catalog"
)

var (
	kindStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// modelsCmd represents the 'models' command group.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Group commands for the model catalog",
	Long:  `The 'models' command groups subcommands that list the classical and quantum models the API can run.`,
}

// modelsListCmd implements 'models list'.
var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every classical and quantum model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if JSONModeEnabled() {
			out := make([]map[string]any, 0, len(catalog.All()))
			for _, m := range catalog.All() {
				out = append(out, modelJSON(m))
			}
			return writeJSON(cmd.OutOrStdout(), out)
		}
		for _, kind := range []catalog.Kind{catalog.Classical, catalog.Quantum} {
			printf(cmd, "%s\n", kindStyle.Render(strings.ToUpper(string(kind[:1]))+string(kind[1:])+" models"))
			for _, m := range catalog.Models(kind) {
				printf(cmd, "  %s %-22s %s\n", keyStyle.Render(fmt.Sprintf("%-13s", m.Key)), m.Name, dimStyle.Render(m.Short))
			}
			printf(cmd, "\n")
		}
		return nil
	},
}

// modelsShowCmd implements 'models show <key>'.
var modelsShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Show a model's parameters, defaults, and schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := catalog.Find(args[0])
		if err != nil {
			return err
		}
		if GetConfig().Debug {
			pp.Fprintln(cmd.ErrOrStderr(), m)
		}
		if JSONModeEnabled() {
			return writeJSON(cmd.OutOrStdout(), modelJSON(m))
		}

		printf(cmd, "%s (%s, %s)\n", kindStyle.Render(m.Name), m.Key, m.Kind)
		printf(cmd, "%s\n", m.Explain)
		if m.AliasOf != "" {
			printf(cmd, "%s\n", dimStyle.Render("Alias of "+m.AliasOf))
		}
		printf(cmd, "\nParameters:\n")
		for _, p := range m.Params {
			def, ok := m.Defaults[p.Key]
			defText := "none"
			if ok {
				defText = fmt.Sprintf("%v", def)
				if defText == "" {
					defText = `""`
				}
			}
			printf(cmd, "  %s %s  default=%s\n", keyStyle.Render(fmt.Sprintf("%-13s", p.Key)), paramRange(p), defText)
			if help := p.Help(); help != "" {
				printf(cmd, "    %s\n", dimStyle.Render(help))
			}
		}
		schema, err := m.SchemaJSON()
		if err != nil {
			return err
		}
		printf(cmd, "\nSchema:\n%s\n", schema)
		return nil
	},
}

// paramRange describes a parameter's type and accepted values.
func paramRange(p catalog.ParamSpec) string {
	parts := []string{string(p.Type)}
	switch {
	case p.Min != nil && p.Max != nil:
		parts = append(parts, fmt.Sprintf("%g..%g", *p.Min, *p.Max))
	case p.Min != nil && p.ExclusiveMin:
		parts = append(parts, fmt.Sprintf(">%g", *p.Min))
	case p.Min != nil:
		parts = append(parts, fmt.Sprintf(">=%g", *p.Min))
	}
	if len(p.Options) > 0 {
		opts := strings.Join(p.Options, "|")
		if p.NumberAlt {
			opts += "|number"
		}
		parts = append(parts, opts)
	}
	if p.Nullable {
		parts = append(parts, "optional")
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func modelJSON(m catalog.Model) map[string]any {
	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, p.Key)
	}
	return map[string]any{
		"key":      m.Key,
		"kind":     m.Kind,
		"name":     m.Name,
		"short":    m.Short,
		"explain":  m.Explain,
		"params":   params,
		"defaults": m.DefaultParams(),
		"schema":   m.Schema(),
	}
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsShowCmd)
	rootCmd.AddCommand(modelsCmd)
}
