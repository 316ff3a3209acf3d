package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/me/slicecfg/internal/profile"
	"github.com/me/slicecfg/pkg/model"
	"github.com/spf13/cobra"
)

// profileView is the client-side shape of a profile. The config stays raw
// until profile.Decode reads it.
type profileView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Config      json.RawMessage `json:"config"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p profileView) decodeConfig() (*model.SlicerConfiguration, error) {
	cfg, err := profile.Decode(p.Config)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.ID, err)
	}
	return cfg, nil
}

func newProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "Manage named configuration profiles on the server",
	}
	cmd.AddCommand(
		newProfilesListCmd(),
		newProfilesShowCmd(),
		newProfilesCreateCmd(),
		newProfilesDeleteCmd(),
	)
	return cmd
}

func newProfilesListCmd() *cobra.Command {
	var (
		limit  int
		slicer string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if limit > 0 {
				q.Set("limit", fmt.Sprint(limit))
			}
			if slicer != "" {
				s, ok := model.ParseSlicer(slicer)
				if !ok {
					return fmt.Errorf("unknown slicer %q", slicer)
				}
				q.Set("slicer", s.Name())
			}
			path := "/api/v1/profiles/"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			resp, err := client.Get(path)
			if err != nil {
				return fmt.Errorf("list profiles: %w", err)
			}

			var data []profileView
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(data) == 0 {
				fmt.Fprintln(out, "No profiles found.")
				return nil
			}

			fmt.Fprintf(out, "%-42s  %-20s  %-12s  %s\n", "ID", "NAME", "SLICER", "UPDATED")
			fmt.Fprintf(out, "%-42s  %-20s  %-12s  %s\n", "--", "----", "------", "-------")
			for _, p := range data {
				slicerName := "?"
				if cfg, err := p.decodeConfig(); err == nil {
					slicerName = cfg.Slicer().Name()
				} else {
					logger.Warn("unreadable profile config", "id", p.ID, "error", err)
				}
				fmt.Fprintf(out, "%-42s  %-20s  %-12s  %s\n", p.ID, p.Name, slicerName, humanize.Time(p.UpdatedAt))
			}

			if resp.Pagination != nil && resp.Pagination.HasMore {
				fmt.Fprintf(out, "\n(%d of %d shown)\n", len(data), resp.Pagination.Total)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of profiles to show")
	cmd.Flags().StringVar(&slicer, "slicer", "", "Only show profiles for this slicer")
	return cmd
}

func newProfilesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <profile_id>",
		Short: "Show a profile and its configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/profiles/" + url.PathEscape(args[0]))
			if err != nil {
				return fmt.Errorf("get profile: %w", err)
			}

			var p profileView
			if err := json.Unmarshal(resp.Data, &p); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}
			cfg, err := p.decodeConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Profile: %s\n", p.ID)
			fmt.Fprintf(out, "  Name:        %s\n", p.Name)
			if p.Description != "" {
				fmt.Fprintf(out, "  Description: %s\n", p.Description)
			}
			fmt.Fprintf(out, "  Created:     %s\n", humanize.Time(p.CreatedAt))
			fmt.Fprintf(out, "  Updated:     %s\n", humanize.Time(p.UpdatedAt))
			fmt.Fprintln(out, "  Config:")
			return printConfig(out, cfg)
		},
	}
}

func newProfilesCreateCmd() *cobra.Command {
	var (
		file        string
		quality     string
		description string
	)
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a profile from a config file or a quality preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" && quality != "" {
				return fmt.Errorf("--file and --quality are mutually exclusive")
			}

			req := map[string]any{
				"name":        args[0],
				"description": description,
			}
			switch {
			case file != "":
				cfg, err := profile.LoadFile(file)
				if err != nil {
					return err
				}
				req["config"] = cfg.ToJSON()
			case quality != "":
				q, err := model.ParseQuality(quality)
				if err != nil {
					return err
				}
				req["quality"] = q
			}

			resp, err := client.Post("/api/v1/profiles/", req)
			if err != nil {
				return fmt.Errorf("create profile: %w", err)
			}

			var p profileView
			if err := json.Unmarshal(resp.Data, &p); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile created: %s (%s)\n", p.ID, p.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Configuration file (JSON or YAML)")
	cmd.Flags().StringVarP(&quality, "quality", "q", "", "Seed the profile from a preset (low, medium, high)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Profile description")
	return cmd
}

func newProfilesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <profile_id>",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, err := client.Delete("/api/v1/profiles/" + url.PathEscape(id)); err != nil {
				return fmt.Errorf("delete profile: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s deleted.\n", id)
			return nil
		},
	}
}
