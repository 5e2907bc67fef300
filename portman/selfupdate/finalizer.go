package selfupdate

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/portmanops/portman/portman/installer"
	"github.com/portmanops/portman/portman/pkgdb"
)

// SelfPackageName is the collection entry describing portman itself.
const SelfPackageName = "portman"

// importantPackages are kept current alongside the essential set, but
// only when already installed in some version.
var importantPackages = []string{"apt", "bzip2", "gzip", "tar"}

// Finalizer reconciles installed package state with the freshly
// synchronized description collection. When the collection describes a
// newer portman, it installs it and hands control to the new binary.
type Finalizer struct {
	DB        pkgdb.Database
	Installer installer.Installer
	Replacer  installer.ProcessReplacer
	Out       io.Writer
	Log       *logrus.Logger

	// SelfExecutable is the path the re-executed finishing step runs
	// from, i.e. where the upgraded binary lands.
	SelfExecutable string

	// Version is the running client version, checked against the
	// collection's declared support range.
	Version string
}

// DoFinish is the first finalization phase. It refreshes the index,
// reloads the collection and, when portman itself has a pending
// upgrade, installs it and replaces the process with
// "portman selfupdate-finish" so the second phase runs under the new
// version. Otherwise the second phase runs in this process.
func (f *Finalizer) DoFinish(ctx context.Context) error {
	if err := f.Installer.RefreshIndex(ctx); err != nil {
		warning(f.Out, "Refreshing the package index failed (%v). Run 'portman refresh-index' once the problem is resolved.", err)
		if f.Log != nil {
			f.Log.WithError(err).Warn("package index refresh failed")
		}
	}

	f.DB.ForgetAll()
	if err := f.DB.ReloadAll(); err != nil {
		return fmt.Errorf("reloading package descriptions: %w", err)
	}

	self, found := f.DB.LookupByName(SelfPackageName)
	if found && self.UpdateAvailable() {
		notice(f.Out, "A newer %s (%s) is described by the collection; upgrading it first.", SelfPackageName, self.Version)
		if err := f.Installer.Install(ctx, []string{SelfPackageName}); err != nil {
			return fmt.Errorf("installing the new %s: %w", SelfPackageName, err)
		}

		err := f.Replacer.Replace(f.SelfExecutable, []string{f.SelfExecutable, "selfupdate-finish"})
		if err != nil {
			// The new version is on disk but this process still runs
			// the old code; continuing here is unsafe.
			return fmt.Errorf("could not hand control to the new %s (%w); run '%s selfupdate-finish' manually to complete the update", SelfPackageName, err, SelfPackageName)
		}
		// Only reachable when the replacer is a recording double.
		return nil
	}

	return f.Finish(ctx)
}

// Finish is the second finalization phase: bring the essential package
// set up to date in one batch. It runs either directly after DoFinish
// or standalone in the re-executed process.
func (f *Finalizer) Finish(ctx context.Context) error {
	if !f.DB.SupportsClient(f.Version) {
		warning(f.Out, "This %s version (%s) is older than the collection supports; results may be incomplete.", SelfPackageName, f.Version)
	}

	essential := f.essentialSet()
	if err := f.Installer.Install(ctx, essential); err != nil {
		return fmt.Errorf("updating essential packages: %w", err)
	}

	if f.Log != nil {
		f.Log.WithField("packages", essential).Info("essential packages updated")
	}
	success(f.Out, "The essential packages are up to date. Run 'portman update-all' to update the remaining packages.")
	return nil
}

// essentialSet is the mandatory list plus the installed subset of the
// important packages.
func (f *Finalizer) essentialSet() []string {
	essential := f.DB.ListEssential()
	seen := make(map[string]bool, len(essential))
	for _, name := range essential {
		seen[name] = true
	}

	for _, name := range importantPackages {
		if seen[name] {
			continue
		}
		pkg, found := f.DB.LookupByName(name)
		if found && pkg.IsAnyVersionInstalled() {
			essential = append(essential, name)
			seen[name] = true
		}
	}
	return essential
}
