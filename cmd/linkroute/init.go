package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vango-dev/linkroute/internal/config"
	"github.com/vango-dev/linkroute/internal/errors"
)

func initCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default linkroute.json",
		Long: `Write linkroute.json with default settings into dir (default: the
working directory). --manifest sets the manifest location it records.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if config.Exists(dir) && !force {
				return errors.New("C003").WithDetail(filepath.Join(dir, config.ConfigFileName))
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.New("C002").Wrap(err)
			}

			cfg := config.New()
			cfg.Manifest = opts.manifest
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "wrote %s", cfg.Path())
			if cfg.Manifest == "" {
				info(cmd.OutOrStdout(), "set \"manifest\" or pass --route to add routes")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing linkroute.json")

	return cmd
}
