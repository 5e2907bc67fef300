package main

import (
	"github.com/spf13/cobra"
)

const defaultConfigPath = "/etc/portman/portman.conf"

type rootFlags struct {
	configPath string
	logFile    string
	debug      bool
	assumeYes  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "portman",
		Short:         "portman manages packages described by a remotely synchronized collection",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", defaultConfigPath, "Path to the portman configuration file")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log", "", "Log file name (stderr when empty)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug log level")
	cmd.PersistentFlags().BoolVarP(&flags.assumeYes, "yes", "y", false, "Assume yes on confirmation prompts")

	cmd.AddCommand(newSelfupdateCmd(flags))
	cmd.AddCommand(newSelfupdateFinishCmd(flags))
	cmd.AddCommand(newRefreshIndexCmd(flags))
	cmd.AddCommand(newInstallCmd(flags))

	return cmd
}
