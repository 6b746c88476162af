package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/quantmind-br/motionscan/internal/config"
	"github.com/quantmind-br/motionscan/internal/tui"
	"github.com/quantmind-br/motionscan/internal/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Edit the configuration file interactively",
		Long: `Opens a terminal editor for the motionscan configuration. Changes are
written to --config, or ~/.motionscan/config.yaml when no path is given.`,
		Args: cobra.NoArgs,
		RunE: runConfigEdit,
	}
	cmd.Flags().Bool("accessible", false, "Use accessible prompts instead of the full-screen editor")

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}

func configPath() string {
	if cfgFile != "" {
		return utils.ExpandPath(cfgFile)
	}
	return config.ConfigFilePath()
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	accessible, _ := cmd.Flags().GetBool("accessible")
	if !accessible && !utils.IsTerminal(os.Stdin) {
		return errors.New("config editor needs a terminal; use 'config init' or --accessible")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path := configPath()
	return tui.Run(tui.Options{
		Config:     cfg,
		Path:       path,
		Accessible: accessible,
		SaveFunc: func(c *config.Config) error {
			return config.Save(c, path)
		},
	})
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := configPath()

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
