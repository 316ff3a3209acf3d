package cli

import (
	"fmt"
	"io"

	"github.com/me/slicecfg/internal/profile"
	"github.com/me/slicecfg/pkg/model"
	"github.com/spf13/cobra"
)

func newPresetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "preset <low|medium|high>",
		Short:     "Print the serialized configuration of a quality preset",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"low", "medium", "high"},
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := model.ParseQuality(args[0])
			if err != nil {
				return err
			}
			logger.Debug("rendering preset", "quality", q.String())
			return printConfig(cmd.OutOrStdout(), model.NewPreset(q))
		},
	}
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := model.DefaultSlicerConfiguration()
			return printConfig(cmd.OutOrStdout(), &cfg)
		},
	}
}

func printConfig(w io.Writer, cfg *model.SlicerConfiguration) error {
	data, err := profile.Encode(cfg)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
