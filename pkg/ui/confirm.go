package ui

import (
	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/pterm/pterm"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string, defaultYes bool) (bool, error)
}

// PromptConfirmer asks on the terminal. With AutoYes every question is
// answered yes without prompting.
type PromptConfirmer struct {
	AutoYes bool
}

func (c PromptConfirmer) Confirm(question string, defaultYes bool) (bool, error) {
	if c.AutoYes {
		return true, nil
	}
	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(defaultYes).
		Show(question)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCommand, "cannot read confirmation")
	}
	return ok, nil
}

// StaticConfirmer gives the same answer to every question. It is used when
// no terminal is attached.
type StaticConfirmer bool

func (c StaticConfirmer) Confirm(string, bool) (bool, error) {
	return bool(c), nil
}
