package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lifeboard/internal/client/models"
)

// Theme cycles the preference, or sets it explicitly when an argument is
// given: `theme` advances light → dark → system, `theme dark` pins dark.
func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		next := a.auth.ToggleTheme(ctx)
		printlnFn(fmt.Sprintf("Theme: %s", next))
		return nil
	}

	t := models.Theme(args[0])
	if err := a.auth.SetTheme(ctx, t); err != nil {
		printlnFn("Usage: theme [light|dark|system]")
		return nil
	}
	printlnFn(fmt.Sprintf("Theme: %s", t))
	return nil
}
