// Package ui draws the status overlays on top of the particle scene.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	WarnColor     rl.Color
	BarBg         rl.Color
	BarFill       rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 12, G: 8, B: 12, A: 200},
		PanelBorder:    rl.Color{R: 90, G: 40, B: 60, A: 255},
		SectionHeader:  rl.Color{R: 238, G: 82, B: 130, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		WarnColor:      rl.Yellow,
		BarBg:          rl.Color{R: 40, G: 30, B: 35, A: 255},
		BarFill:        rl.Color{R: 238, G: 82, B: 130, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
