package constants

// Canvas Layout
const (
	// Overscan sizes the virtual canvas past the viewport to cover parallax travel
	Overscan = 1.1
)

// Terminal Grid (character cells)
const (
	// TerminalPitchX and TerminalPitchY keep camo cells roughly square in a 1:2 font
	TerminalPitchX = 4
	TerminalPitchY = 2

	// TerminalNarrowBelow is the column count under which density is halved
	TerminalNarrowBelow = 60
)

// Window Grid (pixels)
const (
	// WindowPitch is the 28px cell plus the 2px gap
	WindowPitch = 30

	// WindowNarrowBelow is the small-viewport breakpoint in pixels
	WindowNarrowBelow = 768
)

// Noise Field
const (
	// NoiseFreqX is lower than NoiseFreqY to stretch blobs horizontally
	NoiseFreqX = 0.071
	NoiseFreqY = 0.113
)
