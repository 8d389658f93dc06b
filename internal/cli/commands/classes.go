package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ffibind/ffibind/internal/cli/ui"
)

// classSummary is the JSON shape of one row of `ffibind classes`
type classSummary struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Bases     []string `json:"bases"`
	Fields    []string `json:"fields"`
	Signature string   `json:"signature"`
}

func newClassesCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List defined classes",
		Long:  "List every class defined by the loaded manifests, in definition order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.load(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			summaries := make([]classSummary, 0, s.classes.Count())
			for _, name := range s.classes.List() {
				c, _ := s.classes.Get(name)
				bases := make([]string, 0, len(c.Bases()))
				for _, b := range c.Bases() {
					bases = append(bases, b.Name())
				}
				summaries = append(summaries, classSummary{
					Name:      c.Name(),
					Type:      c.TypeKey(),
					Bases:     bases,
					Fields:    c.Fields().Names(),
					Signature: c.Signature().String(),
				})
			}

			if s.format == "json" {
				writeJSON(cmd.OutOrStdout(), summaries)
				return nil
			}

			if len(summaries) == 0 {
				ui.WriteError(cmd.OutOrStdout(), ui.ErrorOptions{
					Level:        ui.ErrorLevelWarning,
					Problem:      "no classes defined",
					HelpCommands: []string{"Load a manifest: ffibind --manifest classes.yaml classes"},
					NoColor:      s.noColor,
				})
				return nil
			}

			table := ui.NewTable(cmd.OutOrStdout(), s.noColor, "CLASS", "TYPE", "BASES", "FIELDS")
			for _, sum := range summaries {
				table.AddRow(sum.Name, sum.Type, strings.Join(sum.Bases, ", "), strconv.Itoa(len(sum.Fields)))
			}
			table.Render()
			return nil
		},
	}
}
