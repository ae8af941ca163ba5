package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/nfnt/resize"

	"github.com/gogpu/widecolor/colorspace"
)

func runConvert(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		in      = fs.String("in", "", "input PNG or JPEG")
		out     = fs.String("out", "", "output PNG")
		from    = fs.String("from", colorspace.SRGB.Name, "source color space")
		to      = fs.String("to", colorspace.DisplayP3.Name, "destination color space")
		maxSize = fs.Uint("max", 0, "downscale so neither side exceeds this many pixels (0 keeps the size)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return errors.New("convert: -in and -out are required")
	}

	src, ok := colorspace.Lookup(*from)
	if !ok {
		return fmt.Errorf("convert: unknown color space %q", *from)
	}
	dst, ok := colorspace.Lookup(*to)
	if !ok {
		return fmt.Errorf("convert: unknown color space %q", *to)
	}

	img, err := loadImage(*in)
	if err != nil {
		return err
	}
	img = fit(img, *maxSize)

	result := colorspace.NewPipeline(src, dst).ConvertImage(img)
	if err := savePNG(*out, result); err != nil {
		return err
	}

	b := result.Bounds()
	fmt.Fprintf(stdout, "%s: %s -> %s (%dx%d)\n", *out, src, dst, b.Dx(), b.Dy())
	return nil
}

// fit downscales img to fit in a maxSize square, keeping the aspect ratio.
func fit(img image.Image, maxSize uint) image.Image {
	if maxSize == 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= int(maxSize) && b.Dy() <= int(maxSize) {
		return img
	}
	return resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
