package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/widecolor/colorspace"
)

// Swatch chart geometry in unscaled pixels.
const (
	labelWidth = 64
	cellWidth  = 48
	cellHeight = 20
	headHeight = 16
)

type swatchRow struct {
	name    string
	r, g, b uint8
}

var swatchRows = []swatchRow{
	{"red", 255, 0, 0},
	{"green", 0, 255, 0},
	{"blue", 0, 0, 255},
	{"cyan", 0, 255, 255},
	{"magenta", 255, 0, 255},
	{"yellow", 255, 255, 0},
	{"orange", 255, 128, 0},
	{"skin", 224, 172, 140},
}

func runSwatch(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("swatch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		out   = fs.String("out", "swatch.png", "output PNG")
		scale = fs.Int("scale", 4, "integer upscale factor")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scale < 1 {
		return fmt.Errorf("swatch: scale must be at least 1, got %d", *scale)
	}

	chart := drawSwatch(colorspace.NewPipeline(colorspace.SRGB, colorspace.DisplayP3))
	if *scale > 1 {
		b := chart.Bounds()
		big := image.NewNRGBA(image.Rect(0, 0, b.Dx()**scale, b.Dy()**scale))
		draw.NearestNeighbor.Scale(big, big.Bounds(), chart, b, draw.Src, nil)
		chart = big
	}
	if err := savePNG(*out, chart); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: %d swatches\n", *out, len(swatchRows))
	return nil
}

// drawSwatch lays out one row per color. The first column holds the sRGB
// color re-encoded by p, the second the same code values taken as P3.
// Shown on a P3 display the second column is the more saturated one.
func drawSwatch(p *colorspace.Pipeline) *image.NRGBA {
	w := labelWidth + 2*cellWidth
	h := headHeight + len(swatchRows)*cellHeight
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{A: 255}), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
	}
	label := func(s string, x, y int) {
		d.Dot = fixed.P(x+2, y+basicfont.Face7x13.Ascent)
		d.DrawString(s)
	}
	label(p.Source().Name, labelWidth, 0)
	label(p.Destination().Name, labelWidth+cellWidth, 0)

	for i, row := range swatchRows {
		y := headHeight + i*cellHeight
		label(row.name, 0, y+(cellHeight-basicfont.Face7x13.Height)/2)

		r, g, b := p.Convert(row.r, row.g, row.b)
		fill(img, image.Rect(labelWidth, y, labelWidth+cellWidth, y+cellHeight-1), color.NRGBA{r, g, b, 255})
		fill(img, image.Rect(labelWidth+cellWidth, y, w, y+cellHeight-1), color.NRGBA{row.r, row.g, row.b, 255})
	}
	return img
}

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}
