package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/me/slicecfg/internal/config"
	"github.com/me/slicecfg/internal/profile"
	"github.com/me/slicecfg/internal/slicejob"
	"github.com/me/slicecfg/pkg/model"
	"github.com/spf13/cobra"
)

func newSliceCmd() *cobra.Command {
	var (
		output       string
		quality      string
		profileFile  string
		profileID    string
		runnerConfig string
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "slice <model-file>",
		Short: "Slice a model file with a preset, profile file or server profile",
		Long: "Slice builds the configuration payload for a model and runs the slicing engine\n" +
			"locally. Without --quality, --profile-file or --profile the defaults are used.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := 0
			for _, s := range []string{quality, profileFile, profileID} {
				if s != "" {
					sources++
				}
			}
			if sources > 1 {
				return fmt.Errorf("--quality, --profile-file and --profile are mutually exclusive")
			}

			cfg, err := resolveSliceConfig(quality, profileFile, profileID)
			if err != nil {
				return err
			}

			job := slicejob.NewJob(*cfg, args[0], output)
			out := cmd.OutOrStdout()

			if dryRun {
				data, err := json.MarshalIndent(job.Payload(), "", "  ")
				if err != nil {
					return fmt.Errorf("marshal payload: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			rc, err := config.LoadRunnerConfig(runnerConfig)
			if err != nil {
				return err
			}
			runner := slicejob.NewRunner(rc, logger)

			res, err := runner.Run(cmd.Context(), job)
			var exitErr *slicejob.ExitError
			switch {
			case errors.Is(err, slicejob.ErrNoBinary):
				return fmt.Errorf("%w (set binaries.%s in --runner-config or SLICECFG_%s)",
					err, cfg.Slicer().Name(), cfg.Slicer().Name())
			case errors.As(err, &exitErr):
				return fmt.Errorf("slice %s: %w", args[0], exitErr)
			case err != nil:
				return fmt.Errorf("slice %s: %w", args[0], err)
			}

			fmt.Fprintf(out, "Sliced %s -> %s\n", job.Input, job.Output)
			fmt.Fprintf(out, "  Job:      %s\n", res.JobID)
			fmt.Fprintf(out, "  Slicer:   %s\n", cfg.Slicer().Name())
			fmt.Fprintf(out, "  Output:   %s\n", res.Output)
			fmt.Fprintf(out, "  Duration: %s\n", res.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output G-code file (required)")
	cmd.Flags().StringVarP(&quality, "quality", "q", "", "Quality preset (low, medium, high)")
	cmd.Flags().StringVar(&profileFile, "profile-file", "", "Configuration file (JSON or YAML)")
	cmd.Flags().StringVar(&profileID, "profile", "", "Profile ID stored on the server")
	cmd.Flags().StringVar(&runnerConfig, "runner-config", "", "Runner config file with slicer binaries")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the slicer payload without running the engine")
	cmd.MarkFlagRequired("output")

	return cmd
}

// resolveSliceConfig picks the configuration source. At most one argument is
// non-empty; with none the defaults are returned.
func resolveSliceConfig(quality, profileFile, profileID string) (*model.SlicerConfiguration, error) {
	switch {
	case quality != "":
		q, err := model.ParseQuality(quality)
		if err != nil {
			return nil, err
		}
		return model.NewPreset(q), nil
	case profileFile != "":
		return profile.LoadFile(profileFile)
	case profileID != "":
		resp, err := client.Get("/api/v1/profiles/" + url.PathEscape(profileID))
		if err != nil {
			return nil, fmt.Errorf("get profile: %w", err)
		}
		var p profileView
		if err := json.Unmarshal(resp.Data, &p); err != nil {
			return nil, fmt.Errorf("parse response: %w", err)
		}
		return p.decodeConfig()
	}
	cfg := model.DefaultSlicerConfiguration()
	return &cfg, nil
}
