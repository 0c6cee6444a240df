package palette

import (
	"fmt"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  RGB
		ok    bool
	}{
		{"rgb(1, 2, 3)", RGB{1, 2, 3}, true},
		{"rgba(10,20,30,0.5)", RGB{10, 20, 30}, true},
		{"rgb( 300 , 0 , 0 )", RGB{255, 0, 0}, true},
		{"#FF8000", RGB{255, 128, 0}, true},
		{"#ff8000", RGB{255, 128, 0}, true},
		{"#abc", RGB{0xAA, 0xBB, 0xCC}, true},
		{"color: #123456 !important", RGB{0x12, 0x34, 0x56}, true},
		// rgb() wins over a hex value later in the string.
		{"rgb(1,1,1) #ffffff", RGB{1, 1, 1}, true},
		{"", RGB{}, false},
		{"red", RGB{}, false},
		{"#12", RGB{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Parse(%q) = %v, %v; expected %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		input string
		want  Code
	}{
		{"", White},
		{"not a color", White},
		{"rgb(0, 0, 0)", Black},
		{"rgb(29, 29, 29)", Black},
		{"rgb(226, 240, 250)", White},
		{"#fff", White},
		{"#000", Black},
		{"rgb(250, 80, 80)", MediumRed},
		{"#21c842", MediumGreen},
		{"rgb(60, 230, 240)", Cyan},
		{"rgb(200, 200, 200)", Grey},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Quantize(tt.input); got != tt.want {
				t.Errorf("Quantize(%q) = %s (%s), expected %s (%s)",
					tt.input, got, got.Name(), tt.want, tt.want.Name())
			}
		})
	}
}

func TestQuantizeIdempotent(t *testing.T) {
	for _, e := range Entries {
		if e.Code == Transparent {
			continue
		}
		css := fmt.Sprintf("rgb(%d, %d, %d)", e.RGB.R, e.RGB.G, e.RGB.B)
		if got := Quantize(css); got != e.Code {
			t.Errorf("Quantize(%s) for %s = %s, expected %s", css, e.Name, got, e.Code)
		}
		if got := Quantize(e.RGB.Hex()); got != e.Code {
			t.Errorf("Quantize(%s) for %s = %s, expected %s", e.RGB.Hex(), e.Name, got, e.Code)
		}
	}
}

func TestNearestNeverTransparent(t *testing.T) {
	for v := 0; v < 256; v += 15 {
		if c := Nearest(RGB{uint8(v), uint8(v), uint8(v)}); c == Transparent {
			t.Fatalf("Nearest(%d,%d,%d) returned transparent", v, v, v)
		}
	}
}

func TestCodeString(t *testing.T) {
	if White.String() != "F" || DarkBlue.String() != "4" || LightYellow.String() != "B" {
		t.Errorf("unexpected code strings %s %s %s", White, DarkBlue, LightYellow)
	}
	for _, b := range []byte("0123456789abcdefABCDEF") {
		if _, ok := FromHexDigit(b); !ok {
			t.Errorf("FromHexDigit(%q) failed", b)
		}
	}
	if _, ok := FromHexDigit('g'); ok {
		t.Error("FromHexDigit('g') should fail")
	}
}
