package common

// ANSI escape sequences for terminal output
const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"
)

// PlayerColors defines the highlight colour for each seat
var PlayerColors = map[int]string{
	1: ColorRed,
	2: ColorBlue,
}

// Board colors
var (
	EmptyBowlColor    = ColorGray
	SeparatorColor    = ColorGray
	ActiveMarkerColor = ColorBold + ColorGreen
)

// PlayerColor returns the colour for a seat, or the empty string for unknown seats
func PlayerColor(playerID int) string {
	return PlayerColors[playerID]
}

// Colorize wraps s in color when enabled is set; an empty color leaves s unchanged.
func Colorize(s, color string, enabled bool) string {
	if !enabled || color == "" {
		return s
	}
	return color + s + ColorReset
}
