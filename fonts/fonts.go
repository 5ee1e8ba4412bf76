package fonts

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

type FontName string

const (
	Label FontName = "label"
	HUD   FontName = "hud"
	Title FontName = "title"
)

// Get returns the loaded face, or the built-in bitmap face when nothing was
// loaded under that name.
func (f FontName) Get() font.Face {
	if face, ok := fonts[f]; ok {
		return face
	}
	return basicfont.Face7x13
}

var (
	fonts = map[FontName]font.Face{}
)

func LoadFont(name FontName, ttf []byte) error {
	return LoadFontWithSize(name, ttf, 10)
}

func LoadFontWithSize(name FontName, ttf []byte, size float64) error {
	fontData, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", name, err)
	}
	fonts[name] = truetype.NewFace(fontData, &truetype.Options{Size: size})
	return nil
}
