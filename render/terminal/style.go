package terminal

import "github.com/charmbracelet/lipgloss"

var (
	// Sender colors — blue for named senders, slate for Unknown.
	colorSender  = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	colorUnknown = lipgloss.AdaptiveColor{Light: "#64748b", Dark: "#94a3b8"}

	// UI colors.
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
	colorMedia  = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"} // purple
	colorLink   = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"} // emerald
)

var (
	styleSenderBadge  = lipgloss.NewStyle().Foreground(colorSender).Bold(true)
	styleUnknownBadge = lipgloss.NewStyle().Foreground(colorUnknown).Bold(true)

	styleTitle = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta  = lipgloss.NewStyle().Foreground(colorDim)

	styleMediaName = lipgloss.NewStyle().Foreground(colorMedia).Bold(true)
	styleMediaType = lipgloss.NewStyle().Foreground(colorDim)
	styleLink      = lipgloss.NewStyle().Foreground(colorLink)
	styleLinkPath  = lipgloss.NewStyle().Foreground(colorDim)

	styleSeparator = lipgloss.NewStyle().Foreground(colorDim)
)
