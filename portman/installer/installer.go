package installer

import "context"

// Installer brings packages onto the system and keeps the package
// index current.
type Installer interface {
	// Install installs or upgrades the named packages in one batch.
	Install(ctx context.Context, names []string) error

	// RefreshIndex re-reads the package index from the configured
	// sources.
	RefreshIndex(ctx context.Context) error
}

// ProcessReplacer swaps the current process image for another
// executable. Replace does not return on success; a nil return is only
// seen from test doubles that record the replacement instead of
// performing it.
type ProcessReplacer interface {
	Replace(path string, args []string) error
}
