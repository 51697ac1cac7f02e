package styles

import "github.com/charmbracelet/lipgloss"

// Common reusable styles built from the color tokens.
var (
	TextPrimaryStyle   = lipgloss.NewStyle().Foreground(TextPrimary)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	TextDimStyle       = lipgloss.NewStyle().Foreground(TextDim)
	TitleStyle         = lipgloss.NewStyle().Foreground(TitleText).Bold(true)
	SelectedRowStyle   = lipgloss.NewStyle().Background(SelectedRowBg)
	ErrorStyle         = lipgloss.NewStyle().Foreground(StatusError)
	NoticeStyle        = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)

	// Filter matches: yellow background, black text
	SearchHighlightStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("11")).
				Foreground(lipgloss.Color("0"))

	LineNumberStyle = lipgloss.NewStyle().Foreground(TextDim)
	FooterStyle     = lipgloss.NewStyle().Foreground(TextSecondary).Background(FooterBg)
)
