// Command walktest runs the mask propagation walk for a single segment and
// prints the vessel run it detects. Useful for checking a segmentation mask
// before measuring a full frame in the UI.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"angio-caliper/internal/imaging"
	"angio-caliper/internal/measure"
	"angio-caliper/pkg/geometry"
)

func main() {
	maskPath := flag.String("mask", "", "Path to segmentation mask (TIFF, PNG, or JPEG)")
	from := flag.String("from", "", "Segment start as x,y")
	to := flag.String("to", "", "Segment end as x,y")
	threshold := flag.Int("threshold", int(imaging.DefaultMaskThreshold), "Binarization threshold (0-255)")
	flag.Parse()

	if *maskPath == "" || *from == "" || *to == "" {
		fmt.Println("Usage: walktest -mask <path> -from x,y -to x,y [-threshold 128]")
		os.Exit(1)
	}

	start, err := parsePoint(*from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad -from value: %v\n", err)
		os.Exit(1)
	}
	end, err := parsePoint(*to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad -to value: %v\n", err)
		os.Exit(1)
	}

	buf, err := imaging.BinarizeMaskFile(*maskPath, uint8(*threshold))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load mask: %v\n", err)
		os.Exit(1)
	}
	bounds := buf.Bounds()
	fmt.Printf("Loaded mask: %dx%d pixels, threshold %d\n", bounds.Dx(), bounds.Dy(), *threshold)

	probe := measure.NewFluidLine(start, end)
	fmt.Printf("Probe segment: %s -> %s, length %.4f\n", fmtPoint(start), fmtPoint(end), probe.Length())

	// A single-line pair of surfaces is enough to drive one propagation.
	cfg := measure.DefaultConfig()
	cfg.MaxLines = 1

	src := measure.NewSurface(cfg)
	src.SetBackground(image.NewRGBA(bounds))
	src.AddLine(probe, true)

	dst := measure.NewSurface(cfg)
	dst.SetBackground(buf)

	measure.Propagate(src, dst)

	lines := dst.PixelLines()
	if len(lines) == 0 {
		fmt.Fprintln(os.Stderr, "Propagation produced no line")
		os.Exit(1)
	}
	run := lines[0]
	if run.IsZero() {
		fmt.Println("No vessel crossing found under the segment")
		os.Exit(2)
	}

	fmt.Printf("Vessel run: %s -> %s\n", fmtPoint(run.Start()), fmtPoint(run.End()))
	fmt.Printf("Caliber: %.4f px over %d walked pixels\n", run.Length(), len(run.Path()))
}

func parsePoint(s string) (geometry.Point2D, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Point2D{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point2D{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point2D{}, err
	}
	return geometry.NewPoint2D(x, y), nil
}

func fmtPoint(p geometry.Point2D) string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}
