// Command export renders every scene line by line and writes the results
// as PNG files, for visual inspection.  Run from the module root directory.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"seehuhn.de/go/scanline"
	"seehuhn.de/go/scanline/testcases"
)

func main() {
	outDir := flag.String("o", "testdata/scenes", "output directory")
	scale := flag.Int("scale", 4, "integer magnification of the output images")
	verbose := flag.Bool("v", false, "log skipped drawables")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	scanline.SetLogger(logger)

	if *scale < 1 {
		logger.Error("invalid scale", "scale", *scale)
		os.Exit(2)
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		logger.Error("cannot create output directory", "err", err)
		os.Exit(1)
	}

	for i := range testcases.Scenes {
		sc := &testcases.Scenes[i]
		fname := filepath.Join(*outDir, sc.Name+".png")
		if err := export(sc, fname, *scale); err != nil {
			logger.Error("export failed", "scene", sc.Name, "err", err)
			os.Exit(1)
		}
		logger.Info("wrote scene", "scene", sc.Name, "file", fname)
	}
}

func export(sc *testcases.Scene, fname string, scale int) (err error) {
	img := image.NewRGBA(image.Rect(0, 0, sc.Width, sc.Height))
	c := sc.Compositor()
	for y := range sc.Height {
		row := img.Pix[y*img.Stride : y*img.Stride+4*sc.Width]
		if err := sc.RenderLine(c, y, row); err != nil {
			return fmt.Errorf("line %d: %w", y, err)
		}
	}

	var out image.Image = img
	if scale > 1 {
		big := image.NewRGBA(image.Rect(0, 0, sc.Width*scale, sc.Height*scale))
		draw.NearestNeighbor.Scale(big, big.Bounds(), img, img.Bounds(), draw.Src, nil)
		out = big
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, out)
}
