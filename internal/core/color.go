package core

// Color is the foreground of a screen cell. Hosts map it to a terminal
// colour; ColorDefault leaves the cell unstyled.
type Color uint8

const (
	ColorDefault Color = iota

	// Gem faces; each gem has a dim and a bright (selected) shade.
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan

	// Actors, HUD and court.
	ColorBrightWhite
	ColorOrange
	ColorGray
)
