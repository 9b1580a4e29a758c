package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the saved configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save one setting to config.yaml",
	Long: `Saves one setting to config.yaml. Keys: ` + strings.Join(config.Keys, ", ") + `.
An empty value clears the setting.

Example:
  portfolio config set endpoint https://example.onrender.com/chat`,
	Args: cobra.ExactArgs(2),
	RunE: setConfig,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of config.yaml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// setConfig edits the file contents only, so environment overrides and
// defaults never end up saved.
func setConfig(cmd *cobra.Command, args []string) error {
	saved, err := config.ReadConfigFile()
	if err != nil {
		return err
	}
	if err := saved.Set(args[0], args[1]); err != nil {
		return err
	}
	if err := config.SaveConfig(saved); err != nil {
		return err
	}
	logger.Info("config updated", zap.String("key", args[0]))
	fmt.Fprintf(cmd.OutOrStdout(), "%s saved\n", args[0])
	return nil
}
