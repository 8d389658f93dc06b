package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ffibind/ffibind/internal/cli/ui"
	"github.com/ffibind/ffibind/internal/manifest"
)

func newNewCommand(flags *globalFlags) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "new <class> [positional...]",
		Short: "Construct an instance through the synthesized constructor",
		Long: `Construct an instance of a class and print its fields.

Positional arguments and --set values are parsed as YAML scalars:
  ffibind new TestCxxClassDerivedDerived 123 456 4 true --set v_str=hi`,
		Args: cobra.MinimumNArgs(1),
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

			positional := make([]any, 0, len(args)-1)
			for _, raw := range args[1:] {
				v, err := manifest.ParseScalar(raw)
				if err != nil {
					return fmt.Errorf("argument %q: %w", raw, err)
				}
				positional = append(positional, v)
			}

			kwargs, err := parseSets(sets)
			if err != nil {
				return err
			}

			obj, err := c.New(positional, kwargs)
			if err != nil {
				return s.report(cmd, err, c.Signature().Names())
			}
			s.logger.Debug("instance constructed",
				zap.String("class", c.Name()),
				zap.Stringer("id", obj.ID()),
			)

			if s.format == "json" {
				writeJSON(cmd.OutOrStdout(), obj)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), obj.String())
			kv := ui.NewKeyValueTable(cmd.OutOrStdout(), s.noColor)
			kv.AddRow("id", obj.ID().String())
			kv.AddRow("type", c.TypeKey())
			kv.Render()
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Keyword argument as name=value (repeatable)")
	return cmd
}

// parseSets turns name=value pairs into keyword arguments
func parseSets(sets []string) (map[string]any, error) {
	kwargs := make(map[string]any, len(sets))
	for _, kv := range sets {
		name, raw, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("--set expects name=value, got %q", kv)
		}
		if _, dup := kwargs[name]; dup {
			return nil, fmt.Errorf("--set %s given more than once", name)
		}
		v, err := manifest.ParseScalar(raw)
		if err != nil {
			return nil, fmt.Errorf("--set %s: %w", name, err)
		}
		kwargs[name] = v
	}
	return kwargs, nil
}
