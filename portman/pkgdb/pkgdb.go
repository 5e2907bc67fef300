package pkgdb

import (
	"github.com/Masterminds/semver/v3"
)

// Package is one entry of the package description collection, joined
// with the installed state recorded for it.
type Package struct {
	Name        string
	Version     string
	Essential   bool
	Description string

	// InstalledVersion is empty when no version of the package is
	// installed.
	InstalledVersion string
}

// IsInstalled reports whether the version described by the collection
// is the one installed.
func (p *Package) IsInstalled() bool {
	return p.InstalledVersion != "" && p.InstalledVersion == p.Version
}

// IsAnyVersionInstalled reports whether some version of the package is
// installed, current or not.
func (p *Package) IsAnyVersionInstalled() bool {
	return p.InstalledVersion != ""
}

// UpdateAvailable reports whether a version newer than the installed
// one is described by the collection. Packages that are not installed
// at all have nothing to update.
func (p *Package) UpdateAvailable() bool {
	if p.InstalledVersion == "" || p.Version == "" {
		return false
	}
	installed, err := semver.NewVersion(p.InstalledVersion)
	if err != nil {
		return p.InstalledVersion != p.Version
	}
	available, err := semver.NewVersion(p.Version)
	if err != nil {
		return p.InstalledVersion != p.Version
	}
	return available.GreaterThan(installed)
}

// Database is the in-memory view of the package description collection.
type Database interface {
	// ForgetAll drops every loaded description so stale state cannot
	// leak into lookups after a refresh.
	ForgetAll()

	// ReloadAll loads the whole description collection from disk.
	ReloadAll() error

	// LookupByName returns the package with the given name.
	LookupByName(name string) (*Package, bool)

	// ListEssential returns the names of every package the collection
	// marks essential.
	ListEssential() []string

	// SupportsClient reports whether the loaded collection declares the
	// given client version as supported.
	SupportsClient(version string) bool
}
