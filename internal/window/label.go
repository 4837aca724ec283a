package window

import (
	"image"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
)

const (
	labelFontSize = 10
	labelDPI      = 72
	labelPadding  = 2
)

// noteLabel rasterises text with the theme font so it can sit on a key face
// without taking part in the key's input handling
func noteLabel(text string, fg color.Color) *canvas.Image {
	f, err := freetype.ParseFont(theme.DefaultTextFont().Content())
	if err != nil {
		log.Printf("Failed to parse font: %v", err)
		return canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	}

	face := truetype.NewFace(f, &truetype.Options{Size: labelFontSize, DPI: labelDPI})
	defer face.Close()

	textWidth := 0
	for _, r := range text {
		if adv, ok := face.GlyphAdvance(r); ok {
			textWidth += adv.Round()
		}
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	width := textWidth + labelPadding*2
	height := (metrics.Ascent+metrics.Descent).Ceil() + labelPadding*2

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	c := freetype.NewContext()
	c.SetFont(f)
	c.SetFontSize(labelFontSize)
	c.SetDPI(labelDPI)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(fg))

	if _, err := c.DrawString(text, freetype.Pt(labelPadding, labelPadding+ascent)); err != nil {
		log.Printf("Failed to draw label %q: %v", text, err)
	}

	label := canvas.NewImageFromImage(img)
	label.SetMinSize(fyne.NewSize(float32(width), float32(height)))
	label.FillMode = canvas.ImageFillOriginal
	return label
}
