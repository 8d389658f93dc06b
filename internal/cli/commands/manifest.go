package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ffibind/ffibind/internal/manifest"
)

func newManifestCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Print the loaded manifests as one YAML document",
		Long: `Merge every loaded manifest, in load order, and print it as YAML.

The output loads back to the same classes, so it can replace a
directory of manifests with a single file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.load(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			data, err := manifest.Marshal(manifest.Merge(s.loaded...))
			if err != nil {
				return err
			}
			s.logger.Debug("manifests merged", zap.Int("documents", len(s.loaded)))

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
