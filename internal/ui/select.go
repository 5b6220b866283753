// Package ui provides the interactive surfaces of the prismops CLI:
// inventory selection prompts, confirmation gates, and styled rendering of
// inventory tables and deployment summaries.
package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ErrCanceled is returned when the operator backs out of an interactive
// form. Callers treat it as a clean exit, not a failure.
var ErrCanceled = errors.New("canceled by user")

// Choice is one selectable inventory entry. Index refers back into the
// caller's slice.
type Choice struct {
	Index int
	Label string
}

// Selector picks one entry from an inventory list. The interactive
// implementation prompts on the terminal; tests substitute a canned one, and
// flag-supplied names bypass selection entirely.
type Selector interface {
	Select(ctx context.Context, title string, choices []Choice) (int, error)
}

// PromptSelector asks the operator to choose via a terminal form.
type PromptSelector struct{}

// Select presents the choices and returns the index of the chosen entry.
func (PromptSelector) Select(ctx context.Context, title string, choices []Choice) (int, error) {
	if len(choices) == 0 {
		return 0, fmt.Errorf("nothing to select")
	}

	options := make([]huh.Option[int], 0, len(choices))
	for _, c := range choices {
		options = append(options, huh.NewOption(c.Label, c.Index))
	}

	var picked int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(title).
				Options(options...).
				Value(&picked),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return 0, ErrCanceled
		}
		return 0, fmt.Errorf("selection failed: %w", err)
	}
	return picked, nil
}

// Confirm asks a yes/no question and returns the answer.
func Confirm(ctx context.Context, title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Value(&ok),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrCanceled
		}
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return ok, nil
}
