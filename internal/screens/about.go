package screens

import (
	"context"

	"github.com/specialistvlad/superlumen/internal/surface"
	"github.com/specialistvlad/superlumen/internal/viewmodel"
)

// About shows product information and a close button.
type About struct {
	screen
}

// NewAbout is the factory of the about screen.
func NewAbout() viewmodel.ViewModel { return &About{} }

// Render implements viewmodel.ViewModel.
func (a *About) Render(context.Context) error {
	a.on(".button-close", surface.EventClick, func(*surface.Event) {
		a.closeWindow()
	})
	return nil
}
