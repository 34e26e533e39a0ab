package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/rookeen/internal/apperr"
	"github.com/nao1215/rookeen/internal/config"
)

//go:embed templates/rookeen.toml
var configTemplate embed.FS

// configTemplatePath is the template location inside configTemplate.
const configTemplatePath = "templates/rookeen.toml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a rookeen configuration file",
		Long: `Init writes a commented rookeen.toml to the current directory.

The generated file lists every configuration key with its default value
and shows how to add per-site cookies, user agents and headers.

Examples:
  # Create rookeen.toml in the current directory
  rookeen init

  # Create the file at a specific path
  rookeen init -o ~/.config/rookeen/config.toml

  # Overwrite an existing file
  rookeen init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return apperr.New(apperr.Usage, "configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile(configTemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return apperr.Wrap(apperr.IO, err, "failed to create directory "+dir)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return apperr.Wrap(apperr.IO, err, "failed to write configuration file "+outputPath)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to configure settings such as:")
	fmt.Fprintln(out, "  - Report format, output directory and analyzers")
	fmt.Fprintln(out, "  - Rate limit, robots.txt policy and timeouts")
	fmt.Fprintln(out, "  - Per-site cookies, user agents and headers")

	return nil
}
