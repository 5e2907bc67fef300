package configstore

// Store is durable key/value preference storage for portman.
// Values are read and mutated in memory; Save writes them back out.
type Store interface {
	// GetWithDefault returns the stored value for key, or def when the
	// key is absent or empty.
	GetWithDefault(key, def string) string

	// Set records a value in memory. It does not persist anything.
	Set(key, value string)

	// Save writes the current values back to durable storage.
	Save() error
}
