package selfupdate

import (
	"context"
	"fmt"
	"io"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/portmanops/portman/portman/configstore"
)

// Finisher runs the post-transfer reconciliation. The orchestrator
// only needs the entry point; the Finalizer supplies the real thing.
type Finisher interface {
	DoFinish(ctx context.Context) error
}

// Orchestrator executes one self-update cycle for an already resolved
// method.
type Orchestrator struct {
	Store     configstore.Store
	Registry  *Registry
	Finalizer Finisher
	Out       io.Writer
	Log       *logrus.Logger
}

// Run drives the cycle: system check, conditional persist, stale state
// cleanup, transfer, stamp, finish. Each step is a hard precondition
// for the next. The persisted preference is deliberately not rolled
// back when a later step fails: a retry then skips selection and goes
// straight back to the transfer.
func (o *Orchestrator) Run(ctx context.Context, sel Selection) error {
	strategy, ok := o.Registry.Lookup(sel.Method)
	if !ok {
		return fmt.Errorf("selfupdate method %q is not implemented", sel.Method)
	}

	if err := strategy.SystemCheck(ctx); err != nil {
		return fmt.Errorf("selfupdate method %s is not usable on this system: %w", sel.Method, err)
	}

	if sel.Changed {
		o.Store.Set(configstore.KeySelfUpdateMethod, string(sel.Method))
		if err := o.Store.Save(); err != nil {
			return fmt.Errorf("persisting selfupdate method: %w", err)
		}
		notice(o.Out, "Default synchronization method is now %s.", sel.Method)
	}

	if err := o.clearOtherStrategies(sel.Method); err != nil {
		return fmt.Errorf("clearing stale strategy state: %w", err)
	}

	if err := strategy.DoDirect(ctx); err != nil {
		return fmt.Errorf("synchronizing package descriptions via %s: %w", sel.Method, err)
	}

	if err := strategy.StampSet(); err != nil {
		return fmt.Errorf("recording %s as the current strategy: %w", sel.Method, err)
	}

	if o.Log != nil {
		o.Log.WithField("method", sel.Method).Info("package descriptions synchronized")
	}

	return o.Finalizer.DoFinish(ctx)
}

// clearOtherStrategies wipes the stamp and cached metadata of every
// strategy except the selected one, so state from an abandoned
// strategy cannot be mistaken for current.
func (o *Orchestrator) clearOtherStrategies(selected Method) error {
	var errs *multierror.Error
	for _, method := range o.Registry.Methods() {
		if method == selected {
			continue
		}
		other, _ := o.Registry.Lookup(method)
		if err := other.StampClear(); err != nil {
			errs = multierror.Append(errs, err)
		}
		if err := other.ClearMetadata(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}
