package cmdlet

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"k8s.io/klog/v2"

	"github.com/scality/s3control-cli/pkg/constants"
)

// Confirmer obtains an explicit affirmation before a mutating operation runs.
type Confirmer interface {
	Confirm(action, target string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(action, target string) (bool, error)

func (f ConfirmFunc) Confirm(action, target string) (bool, error) {
	return f(action, target)
}

// PromptConfirmer asks the user on the terminal. It denies when stdin is not
// a terminal.
type PromptConfirmer struct {
	In *os.File
}

func NewPromptConfirmer() *PromptConfirmer {
	return &PromptConfirmer{In: os.Stdin}
}

func (c *PromptConfirmer) Confirm(action, target string) (bool, error) {
	fd := c.In.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		klog.V(constants.LvlEvent).InfoS("Standard input is not a terminal, cannot ask for confirmation", "action", action)
		return false, nil
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Performing %s on target %q. Continue", action, target),
		IsConfirm: true,
		Stdin:     c.In,
	}
	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	default:
		return false, err
	}
}

// affirmed reports whether a mutating operation may proceed.
func affirmed(action, target string, force bool, c Confirmer) bool {
	if force {
		return true
	}
	if c == nil {
		return false
	}
	ok, err := c.Confirm(action, target)
	if err != nil {
		klog.ErrorS(err, "Confirmation prompt failed", "action", action, "target", target)
		return false
	}
	return ok
}
