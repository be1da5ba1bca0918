// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the storefront TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	HeaderBrand    lipgloss.Style

	// ==========================================================================
	// NAVIGATION MENU STYLES
	// ==========================================================================

	NavBar          lipgloss.Style
	NavItem         lipgloss.Style
	NavItemActive   lipgloss.Style
	NavItemDisabled lipgloss.Style

	// ==========================================================================
	// DATA TABLE STYLES
	// ==========================================================================

	TableBorder      lipgloss.Style
	TableHeader      lipgloss.Style
	TableHeaderSort  lipgloss.Style
	TableCell        lipgloss.Style
	TableRowSelected lipgloss.Style
	TableEmpty       lipgloss.Style
	TableFooter      lipgloss.Style
	PagerButton      lipgloss.Style
	PagerDisabled    lipgloss.Style

	// ==========================================================================
	// FORM AND INPUT STYLES
	// ==========================================================================

	FormBox          lipgloss.Style
	FormTitle        lipgloss.Style
	FormLabel        lipgloss.Style
	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	ButtonActive     lipgloss.Style
	ButtonInactive   lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusOnline lipgloss.Style
	StatusRole   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner     lipgloss.Style
	LoadingText lipgloss.Style

	// ==========================================================================
	// ERROR BOX STYLES
	// ==========================================================================

	ErrorBox        lipgloss.Style
	ErrorTitle      lipgloss.Style
	ErrorMessage    lipgloss.Style
	ErrorSuggestion lipgloss.Style

	// ==========================================================================
	// DASHBOARD CARD STYLES
	// ==========================================================================

	Card      lipgloss.Style
	CardTitle lipgloss.Style
	CardValue lipgloss.Style
	CardDelta lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles with shapes and high contrast
	// ==========================================================================

	// SuccessStyle - Used for success states with checkmark indicator
	SuccessStyle lipgloss.Style
	// ErrorStyle - Used for error states with X mark indicator
	ErrorStyle lipgloss.Style
	// WarningStyle - Used for warning states with warning triangle indicator
	WarningStyle lipgloss.Style
	// InfoStyle - Used for info states with info circle indicator
	InfoStyle lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	// Detect terminal capabilities
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	// Navigation menu
	t.NavBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.NavItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.NavItemActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	t.NavItemDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	// Data table
	t.TableBorder = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay)

	t.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)

	t.TableHeaderSort = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Background(SurfaceDim).
		Padding(0, 1)

	t.TableCell = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.TableRowSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true)

	t.TableEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Align(lipgloss.Center).
		Padding(1, 0)

	t.TableFooter = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.PagerButton = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.PagerDisabled = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Forms and inputs
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 3)

	t.FormTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Align(lipgloss.Center)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.ButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 3)

	t.ButtonInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceBright).
		Padding(0, 3)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusOnline = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.StatusRole = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Spinner and loading
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Error box
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ErrorSuggestion = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Dashboard cards
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.CardTitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.CardValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.CardDelta = lipgloss.NewStyle().
		Foreground(Emerald)

	// Accessibility status styles
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(InfoHighContrast).
		Bold(true)
}

// SetSize updates the theme layout dimensions after a terminal resize.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// RenderSuccessIndicator renders text with the success style and indicator.
func (t *Theme) RenderSuccessIndicator(text string) string {
	return t.SuccessStyle.Render(StatusIndicators.Success + " " + text)
}

// RenderErrorIndicator renders text with the error style and indicator.
func (t *Theme) RenderErrorIndicator(text string) string {
	return t.ErrorStyle.Render(StatusIndicators.Error + " " + text)
}

// RenderWarningIndicator renders text with the warning style and indicator.
func (t *Theme) RenderWarningIndicator(text string) string {
	return t.WarningStyle.Render(StatusIndicators.Warning + " " + text)
}
