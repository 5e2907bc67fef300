package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/portmanops/portman/portman/prompt"
	"github.com/portmanops/portman/portman/selfupdate"
)

func newSelfupdateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "selfupdate [method]",
		Short: "Synchronize the package description collection and update the essential packages",
		Long: `Synchronize the package description collection using the configured
method (point, cvs or rsync), then reconcile the installed packages
against it. Passing a method changes the configured default.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			requested := ""
			if len(args) == 1 {
				requested = args[0]
			}

			selector := &selfupdate.Selector{
				Store:     app.store,
				Registry:  app.registry,
				UI:        prompt.NewHuhUI(),
				Out:       app.out,
				Log:       app.log,
				AssumeYes: flags.assumeYes,
			}
			selection, err := selector.Resolve(requested)
			if err != nil {
				if errors.Is(err, selfupdate.ErrDeclined) {
					return nil
				}
				return err
			}

			orchestrator := &selfupdate.Orchestrator{
				Store:     app.store,
				Registry:  app.registry,
				Finalizer: app.finalizer,
				Out:       app.out,
				Log:       app.log,
			}
			return orchestrator.Run(cmd.Context(), selection)
		},
	}
}

// newSelfupdateFinishCmd is the entry point the freshly installed
// binary is re-executed into after portman upgrades itself.
func newSelfupdateFinishCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:    "selfupdate-finish",
		Short:  "Complete a self-update after portman upgraded itself",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := app.db.ReloadAll(); err != nil {
				return err
			}
			return app.finalizer.Finish(cmd.Context())
		},
	}
}

func newRefreshIndexCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-index",
		Short: "Re-read the package index from the configured sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return app.installer.RefreshIndex(cmd.Context())
		},
	}
}

func newInstallCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "install <package>...",
		Short: "Install or upgrade the named packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return app.installer.Install(cmd.Context(), args)
		},
	}
}
