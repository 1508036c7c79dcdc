// Package tui provides terminal user interface components for scon.
//
// It uses the Bubble Tea framework for the interactive prompts of the
// delete command and lipgloss for the styled container listing.
//
// # Delete Option Picker
//
//	result, err := tui.RunPicker(container)
//	switch result.Action {
//	case tui.ActionSelect:
//	    // delete with result.Option
//	case tui.ActionQuit:
//	    // abort
//	}
//
// # Confirmation
//
//	ok, err := tui.RunConfirm("Delete web? This cannot be undone.")
//
// # Listing
//
// RenderContainers formats a registry for `scon list`.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
