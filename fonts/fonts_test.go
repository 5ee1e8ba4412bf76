package fonts

import (
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestGetFallsBackToBitmapFace(t *testing.T) {
	if got := Title.Get(); got != basicfont.Face7x13 {
		t.Fatalf("Get() = %v, want basicfont.Face7x13", got)
	}
}

func TestLoadFontRejectsGarbage(t *testing.T) {
	if err := LoadFont(HUD, []byte("not a font")); err == nil {
		t.Fatal("expected parse error")
	}
	if got := HUD.Get(); got != basicfont.Face7x13 {
		t.Fatal("failed load must not replace the fallback face")
	}
}
