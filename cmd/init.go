/*
Copyright © 2026 JACOB ARTHURS
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacobarthurs/pgroomba/internal/profile"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create config file with example template",
	Long: `Create the pgroomba config file with an example template.

The config file stores named database connection profiles and the default
thresholds used by "report" and "run". If a config file already exists,
it will not be overwritten unless --force is given.`,
	Example: `  # Create default config
  pgroomba init

  # Overwrite existing config
  pgroomba init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path, err := profile.Init(force)
		if errors.Is(err, profile.ErrConfigExists) {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created config at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "Overwrite existing config file")
}
