package selfupdate

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/portmanops/portman/portman/configstore"
	"github.com/portmanops/portman/portman/prompt"
)

// ErrDeclined means the user rejected the change-of-default
// confirmation. It is a clean abort, not a failure: nothing has been
// mutated and the caller should exit silently with status zero.
var ErrDeclined = errors.New("default method change declined")

// Selection is the outcome of method resolution.
type Selection struct {
	Method Method

	// Changed is true when Method differs from the persisted default,
	// including when no default was stored yet.
	Changed bool
}

// Selector resolves which strategy to use for one self-update run. It
// has no side effects; persisting the choice is the orchestrator's
// call to make.
type Selector struct {
	Store    configstore.Store
	Registry *Registry
	UI       prompt.UI
	Out      io.Writer
	Log      *logrus.Logger

	// AssumeYes skips the change-of-default confirmation, for
	// non-interactive runs.
	AssumeYes bool
}

// Resolve turns the optional CLI token into the method for this run.
func (s *Selector) Resolve(requested string) (Selection, error) {
	method := NormalizeMethod(requested)
	previous := Method(strings.ToLower(s.Store.GetWithDefault(configstore.KeySelfUpdateMethod, "")))

	if method == MethodUnset {
		if previous != MethodUnset {
			method = previous
		} else {
			chosen, err := s.promptForMethod()
			if err != nil {
				return Selection{}, err
			}
			method = chosen
		}
	} else {
		notice(s.Out, "Passing a method to selfupdate changes the default; plain 'portman selfupdate' reuses the current one.")
		if previous != MethodUnset && method != previous && !s.AssumeYes {
			ok, err := s.confirmChange(previous, method)
			if err != nil {
				return Selection{}, err
			}
			if !ok {
				return Selection{}, ErrDeclined
			}
		}
	}

	if _, registered := s.Registry.Lookup(method); !registered {
		return Selection{}, fmt.Errorf("selfupdate method %q is not implemented", method)
	}

	if s.Log != nil {
		s.Log.WithFields(logrus.Fields{"method": method, "previous": previous}).Debug("resolved selfupdate method")
	}
	return Selection{Method: method, Changed: method != previous}, nil
}

func (s *Selector) promptForMethod() (Method, error) {
	options := make([]string, 0, len(s.Registry.Methods()))
	for _, m := range s.Registry.Methods() {
		options = append(options, string(m))
	}

	chosen := string(MethodRsync)
	if err := s.UI.Select("Choose a method for synchronizing the package descriptions", options, &chosen); err != nil {
		return MethodUnset, fmt.Errorf("selecting a synchronization method: %w", err)
	}
	return Method(chosen), nil
}

func (s *Selector) confirmChange(previous, next Method) (bool, error) {
	ok := false
	title := fmt.Sprintf("Change the default synchronization method from %s to %s?", previous, next)
	if err := s.UI.Confirm(title, &ok); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirming method change: %w", err)
	}
	return ok, nil
}
