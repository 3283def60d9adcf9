package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorReceived = lipgloss.Color("#00D26A") // green  — incoming transfers
	ColorSent     = lipgloss.Color("#FFB800") // yellow — outgoing transfers
	ColorError    = lipgloss.Color("#FF4444") // red    — errors, warnings
	ColorAddress  = lipgloss.Color("#00B4D8") // cyan   — addresses, hashes
	ColorValue    = lipgloss.Color("#FFFFFF") // white bold — amounts
	ColorMeta     = lipgloss.Color("#555555") // dim gray   — metadata
	ColorAccent   = lipgloss.Color("#9B5DE5") // purple     — titles, progress
)

// Base styles.
var (
	StyleReceived = lipgloss.NewStyle().Foreground(ColorReceived).Bold(true)
	StyleSent     = lipgloss.NewStyle().Foreground(ColorSent).Bold(true)
	StyleError    = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleAddress  = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleValue    = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	StyleMeta     = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleAccent   = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginBottom(1)
)

// Err formats an error message.
func Err(msg string) string { return StyleError.Render("✗ " + msg) }

// Warn formats a warning message.
func Warn(msg string) string { return StyleError.Render("⚠ " + msg) }

// Addr formats an address or hash.
func Addr(a string) string { return StyleAddress.Render(a) }

// Val formats an amount.
func Val(v string) string { return StyleValue.Render(v) }

// Meta formats metadata text.
func Meta(m string) string { return StyleMeta.Render(m) }

// TruncateAddr shortens an address for display: 0x1234…5678.
func TruncateAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}
