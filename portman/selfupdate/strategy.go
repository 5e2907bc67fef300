package selfupdate

import "context"

// Strategy is one pluggable backend for transferring the package
// description collection.
type Strategy interface {
	// SystemCheck reports whether the strategy is usable on this
	// system, typically whether its transfer tool is installed.
	SystemCheck(ctx context.Context) error

	// DoDirect performs the description collection transfer.
	DoDirect(ctx context.Context) error

	// StampSet marks this strategy's on-disk state as current.
	StampSet() error

	// StampClear removes this strategy's stamp.
	StampClear() error

	// ClearMetadata removes this strategy's cached working data.
	ClearMetadata() error
}

// Registry is the fixed method-to-strategy mapping, built once at
// startup. Methods are kept in registration order so prompts and
// cleanup walk them deterministically.
type Registry struct {
	strategies map[Method]Strategy
	order      []Method
}

func NewRegistry() *Registry {
	return &Registry{strategies: make(map[Method]Strategy)}
}

func (r *Registry) Register(method Method, strategy Strategy) {
	if _, exists := r.strategies[method]; !exists {
		r.order = append(r.order, method)
	}
	r.strategies[method] = strategy
}

func (r *Registry) Lookup(method Method) (Strategy, bool) {
	strategy, ok := r.strategies[method]
	return strategy, ok
}

// Methods returns every registered method in registration order.
func (r *Registry) Methods() []Method {
	out := make([]Method, len(r.order))
	copy(out, r.order)
	return out
}
