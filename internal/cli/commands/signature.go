package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ffibind/ffibind/internal/cli/ui"
)

// parameterView is the JSON shape of one constructor parameter
type parameterView struct {
	Name     string         `json:"name"`
	Kind     string         `json:"kind"`
	Type     string         `json:"type,omitempty"`
	Required bool           `json:"required"`
	Default  string         `json:"default,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func newSignatureCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "signature <class>",
		Short: "Show the synthesized constructor of a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.load(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			c, err := s.class(cmd, args[0])
			if err != nil {
				return err
			}
			sig := c.Signature()

			params := make([]parameterView, 0, sig.Len())
			for _, p := range sig.Parameters() {
				view := parameterView{
					Name:     p.Name,
					Kind:     p.Kind.String(),
					Type:     p.Type,
					Required: p.Required(),
					Default:  p.DefaultString(),
				}
				if f, ok := c.Fields().Get(p.Name); ok {
					view.Metadata = f.MetadataMap()
				}
				params = append(params, view)
			}

			if s.format == "json" {
				writeJSON(cmd.OutOrStdout(), struct {
					Class      string          `json:"class"`
					Signature  string          `json:"signature"`
					Parameters []parameterView `json:"parameters"`
				}{c.Name(), sig.String(), params})
				return nil
			}

			ui.Header(cmd.OutOrStdout(), c.Name()+sig.String(), s.noColor)
			table := ui.NewTable(cmd.OutOrStdout(), s.noColor, "PARAMETER", "KIND", "TYPE", "DEFAULT", "METADATA")
			for _, p := range params {
				table.AddRow(p.Name, p.Kind, p.Type, p.Default, formatMetadata(p.Metadata))
			}
			table.Render()
			return nil
		},
	}
}

// formatMetadata renders metadata as sorted key=value pairs
func formatMetadata(md map[string]any) string {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%v", k, md[k])
	}
	return strings.Join(pairs, ", ")
}
