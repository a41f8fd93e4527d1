//go:build !windows

package imageprint

import (
	"fmt"
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
)

// FprintRasTerm draws an image using the RasTerm library.
//
// This should enable drawing in Kitty, iTerm/WezTerm and Sixel capable
// terminals. Nothing is drawn elsewhere.
func FprintRasTerm(w io.Writer, i image.Image) error {
	if rasterm.IsTermKitty() {
		defer fmt.Fprint(w, "\n")
		return rasterm.Settings{}.KittyWriteImage(w, i)
	}
	if rasterm.IsTermItermWez() {
		defer fmt.Fprint(w, "\n")
		return rasterm.Settings{}.ItermWriteImage(w, i)
	}
	if capable, err := rasterm.IsSixelCapable(); capable && err == nil {
		palettedImage := image.NewPaletted(i.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(palettedImage, i.Bounds(), i, i.Bounds().Min)

		defer fmt.Fprint(w, "\n")
		return rasterm.Settings{}.SixelWriteImage(w, palettedImage)
	}
	return nil
}
