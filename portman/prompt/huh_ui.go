package prompt

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// HuhUI implements UI with charmbracelet/huh forms.
type HuhUI struct {
	isTerminal func() bool
}

// NewHuhUI returns a UI backed by huh, using the default terminal
// check.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: IsInteractive}
}

func (ui *HuhUI) runForm(form *huh.Form) error {
	check := ui.isTerminal
	if check == nil {
		check = IsInteractive
	}
	if !check() {
		return ErrNotInteractive
	}

	err := form.Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

func (ui *HuhUI) Select(title string, options []string, value *string) error {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}

	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(value),
		),
	))
}

func (ui *HuhUI) Confirm(title string, value *bool) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(value),
		),
	))
}
