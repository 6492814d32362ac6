package constants

// Keypad Layout
const (
	// KeypadRows and KeypadCols give the shape of the glyph keypad
	KeypadRows = 4
	KeypadCols = 5

	// KeyWidth and KeyHeight are the terminal footprint of one key
	KeyWidth  = 7
	KeyHeight = 3
)

// Screen Layout
const (
	// TopBarHeight is the title/settings row
	TopBarHeight = 1

	// InputHeight is the number of rows given to the code input
	InputHeight = 2

	// SpecialBarHeight is the row of Ret/Clear/Bksp buttons
	SpecialBarHeight = 1
)

// Special button labels
const (
	LabelReturn       = "Ret"
	LabelClearHistory = "Clear Past"
	LabelClearInput   = "Clear Curr"
	LabelSemicolon    = ";"
	LabelBackspace    = "Bksp"
	LabelRun          = "Run"
	LabelSettings     = "Settings"
)

// ScrollStep is how many scrollback lines one wheel notch moves
const ScrollStep = 3
