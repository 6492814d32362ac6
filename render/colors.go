package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/amatgil/uiuapp/catalog"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbForeground = tcell.NewRGBColor(209, 218, 236) // Plain code and labels
	RgbDim        = tcell.NewRGBColor(110, 110, 130) // Borders and hints

	RgbKeyBg       = tcell.NewRGBColor(40, 42, 58)
	RgbKeyPressed  = tcell.NewRGBColor(70, 74, 100)
	RgbButtonBg    = tcell.NewRGBColor(55, 58, 80)
	RgbTopBarBg    = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbTopBarText  = tcell.NewRGBColor(0, 0, 0)
	RgbResultText  = tcell.NewRGBColor(180, 180, 180)
	RgbInputBg     = tcell.NewRGBColor(32, 34, 48)
	RgbCursor      = tcell.NewRGBColor(255, 165, 0)
	RgbErrorText   = tcell.NewRGBColor(255, 80, 80)
	RgbAlternateBg = tcell.NewRGBColor(80, 80, 80)    // Radial ring, idle arc
	RgbSelectedBg  = tcell.NewRGBColor(200, 200, 200) // Radial ring, selected arc
)

// Glyph class colors
var classColors = map[string]tcell.Color{
	catalog.ClassNoadicFunction:  tcell.NewRGBColor(237, 94, 106),
	catalog.ClassMonadicFunction: tcell.NewRGBColor(149, 209, 106),
	catalog.ClassDyadicFunction:  tcell.NewRGBColor(84, 176, 252),
	catalog.ClassMonadicModifier: tcell.NewRGBColor(240, 195, 111),
	catalog.ClassDyadicModifier:  tcell.NewRGBColor(204, 107, 233),
	catalog.ClassStackFunction:   RgbForeground,
	catalog.ClassTranspose:       tcell.NewRGBColor(245, 169, 184),
	catalog.ClassConstant:        tcell.NewRGBColor(255, 136, 68),
	catalog.ClassString:          tcell.NewRGBColor(32, 249, 252),
	catalog.ClassComment:         tcell.NewRGBColor(136, 136, 136),
}

// ClassColor returns the foreground for a style class; unknown classes are plain
func ClassColor(class string) tcell.Color {
	if c, ok := classColors[class]; ok {
		return c
	}
	return RgbForeground
}
