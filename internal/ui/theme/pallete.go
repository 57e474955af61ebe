package theme

import (
	"errors"
	"fmt"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

var ErrUnknownFlavour = errors.New("unknown catppuccin flavour")

var theme = catppuccin.Mocha

// SetFlavour switches the palette to the named catppuccin flavour.
func SetFlavour(name string) error {
	switch name {
	case "", "mocha":
		theme = catppuccin.Mocha
	case "macchiato":
		theme = catppuccin.Macchiato
	case "frappe":
		theme = catppuccin.Frappe
	case "latte":
		theme = catppuccin.Latte
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFlavour, name)
	}
	return nil
}

func Red() lipgloss.Color      { return lipgloss.Color(theme.Red().Hex) }
func Peach() lipgloss.Color    { return lipgloss.Color(theme.Peach().Hex) }
func Yellow() lipgloss.Color   { return lipgloss.Color(theme.Yellow().Hex) }
func Green() lipgloss.Color    { return lipgloss.Color(theme.Green().Hex) }
func Teal() lipgloss.Color     { return lipgloss.Color(theme.Teal().Hex) }
func Blue() lipgloss.Color     { return lipgloss.Color(theme.Blue().Hex) }
func Mauve() lipgloss.Color    { return lipgloss.Color(theme.Mauve().Hex) }
func Text() lipgloss.Color     { return lipgloss.Color(theme.Text().Hex) }
func Subtext1() lipgloss.Color { return lipgloss.Color(theme.Subtext1().Hex) }
func Overlay0() lipgloss.Color { return lipgloss.Color(theme.Overlay0().Hex) }
func Surface0() lipgloss.Color { return lipgloss.Color(theme.Surface0().Hex) }
func Mantle() lipgloss.Color   { return lipgloss.Color(theme.Mantle().Hex) }
