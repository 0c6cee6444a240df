// Package palette holds the TI-99/4A 16 color palette and maps CSS color
// strings onto it.
package palette

import "fmt"

// Code is a palette index 0-15, written as one hex digit in markup.
type Code uint8

// Palette codes.
const (
	Transparent Code = iota
	Black
	MediumGreen
	LightGreen
	DarkBlue
	LightBlue
	DarkRed
	Cyan
	MediumRed
	LightRed
	DarkYellow
	LightYellow
	DarkGreen
	Magenta
	Grey
	White
)

// Roles used by the converter.
const (
	DefaultFg  = White
	DefaultBg  = DarkBlue
	Highlight  = LightYellow
	LinkFg     = Cyan
	FooterFg   = Grey
	NearBlack  = Black
	NearWhite  = White
	Unparsable = White
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Entry is one palette slot.
type Entry struct {
	Code Code
	Name string
	RGB  RGB
}

// Entries is the palette in table order. Quantize breaks ties by this order.
var Entries = [16]Entry{
	{Transparent, "transparent", RGB{0, 0, 0}},
	{Black, "black", RGB{0, 0, 0}},
	{MediumGreen, "medium-green", RGB{33, 200, 66}},
	{LightGreen, "light-green", RGB{94, 220, 120}},
	{DarkBlue, "dark-blue", RGB{84, 85, 237}},
	{LightBlue, "light-blue", RGB{125, 118, 252}},
	{DarkRed, "dark-red", RGB{212, 82, 77}},
	{Cyan, "cyan", RGB{66, 235, 245}},
	{MediumRed, "medium-red", RGB{252, 85, 84}},
	{LightRed, "light-red", RGB{255, 121, 120}},
	{DarkYellow, "dark-yellow", RGB{212, 193, 84}},
	{LightYellow, "light-yellow", RGB{230, 206, 128}},
	{DarkGreen, "dark-green", RGB{33, 176, 59}},
	{Magenta, "magenta", RGB{201, 91, 186}},
	{Grey, "grey", RGB{204, 204, 204}},
	{White, "white", RGB{255, 255, 255}},
}

// String returns the code as a single uppercase hex digit.
func (c Code) String() string {
	return fmt.Sprintf("%X", uint8(c)&0x0F)
}

// RGB returns the display color of the code.
func (c Code) RGB() RGB {
	return Entries[c&0x0F].RGB
}

// Name returns the palette name of the code.
func (c Code) Name() string {
	return Entries[c&0x0F].Name
}

// IsTransparent reports whether the code is 0. Only meaningful as a background.
func (c Code) IsTransparent() bool {
	return c&0x0F == Transparent
}

// FromHexDigit parses one hex digit into a code.
func FromHexDigit(b byte) (Code, bool) {
	switch {
	case b >= '0' && b <= '9':
		return Code(b - '0'), true
	case b >= 'a' && b <= 'f':
		return Code(b - 'a' + 10), true
	case b >= 'A' && b <= 'F':
		return Code(b - 'A' + 10), true
	}
	return 0, false
}
