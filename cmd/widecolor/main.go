// Command widecolor inspects wide-color negotiation and converts images
// between sRGB and Display P3.
//
// Usage:
//
//	widecolor negotiate [-report passthrough|p3|legacy] [-configs rgba8,rgb10a2,rgba16f] [-mode P3/RGBA8] [-v]
//	widecolor convert -in photo.png -out photo-p3.png [-from sRGB] [-to "Display P3"] [-max 2048]
//	widecolor swatch [-out swatch.png] [-scale 4]
//
// negotiate runs the context negotiator against an in-memory display with
// the chosen extension report and prints the mode it settles on.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

var errUsage = errors.New("usage: widecolor negotiate|convert|swatch [flags]")

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "negotiate":
		return runNegotiate(args[1:], stdout, stderr)
	case "convert":
		return runConvert(args[1:], stdout, stderr)
	case "swatch":
		return runSwatch(args[1:], stdout, stderr)
	default:
		return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}
}
