package colour

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"#000000", RGB{}, false},
		{"#ffffff", RGB{R: 255, G: 255, B: 255}, false},
		{"1A2B3C", RGB{R: 26, G: 43, B: 60}, false},
		{"#f00", RGB{R: 255}, false},
		{"", RGB{}, true},
		{"#12345", RGB{}, true},
		{"blue", RGB{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := RGB{R: 102, G: 126, B: 234}
	b := RGB{R: 118, G: 75, B: 162}

	if got := Blend(a, b, 0); got != a {
		t.Errorf("Blend(t=0) = %+v, want %+v", got, a)
	}
	if got := Blend(a, b, 1); got != b {
		t.Errorf("Blend(t=1) = %+v, want %+v", got, b)
	}
}

func TestLuminance(t *testing.T) {
	if l := Luminance(RGB{}); l != 0 {
		t.Errorf("Luminance(black) = %f", l)
	}
	if l := Luminance(RGB{R: 255, G: 255, B: 255}); l < 0.99 {
		t.Errorf("Luminance(white) = %f", l)
	}
}
