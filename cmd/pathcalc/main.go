// Command pathcalc measures a path from the command line, using the same
// calibration session as the GUI: two reference points with a known length
// establish the scale, then a chain of points is measured against it.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"photo-ruler/internal/session"
	"photo-ruler/internal/units"
	"photo-ruler/pkg/geometry"

	"github.com/spf13/cobra"
)

var (
	refSpec    string
	refLength  float64
	unitLabel  string
	pointsSpec string
	imageW     int
	imageH     int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "pathcalc",
	Short: "Measure a pixel path against a known-length reference",
	Long: `Pathcalc derives a pixel-to-real-world scale factor from two reference
points and a known length, then reports the cumulative length of a path of
points. Coordinates are image-space pixels, written as "x,y" pairs separated
by semicolons.`,
	Example: `  pathcalc --ref "0,0;100,0" --length 10 --unit in --points "0,0;50,0;50,50"`,
	RunE:    runMeasure,
}

func init() {
	rootCmd.Flags().StringVar(&refSpec, "ref", "", `two reference points, e.g. "0,0;100,0"`)
	rootCmd.Flags().Float64Var(&refLength, "length", 0, "real-world length of the reference span")
	rootCmd.Flags().StringVar(&unitLabel, "unit", "in", "display unit: in, cm, mm, or fur")
	rootCmd.Flags().StringVar(&pointsSpec, "points", "", `path points to measure, e.g. "0,0;50,0;50,50"`)
	rootCmd.Flags().IntVar(&imageW, "width", 10000, "image pixel width (informational)")
	rootCmd.Flags().IntVar(&imageH, "height", 10000, "image pixel height (informational)")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "print scale factor and per-segment detail")

	rootCmd.MarkFlagRequired("ref")
	rootCmd.MarkFlagRequired("length")
	rootCmd.MarkFlagRequired("points")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	unit, err := units.Parse(unitLabel)
	if err != nil {
		return err
	}

	refPoints, err := parsePoints(refSpec)
	if err != nil {
		return fmt.Errorf("invalid --ref: %w", err)
	}
	if len(refPoints) != 2 {
		return fmt.Errorf("--ref needs exactly 2 points, got %d", len(refPoints))
	}

	pathPoints, err := parsePoints(pointsSpec)
	if err != nil {
		return fmt.Errorf("invalid --points: %w", err)
	}
	if len(pathPoints) < 2 {
		return fmt.Errorf("--points needs at least 2 points, got %d", len(pathPoints))
	}

	// Replay the same operations the GUI performs.
	sess := session.New()
	sess.SetImage(imageW, imageH)
	sess.SetReferenceLength(refLength, unit)
	for _, p := range refPoints {
		if err := sess.RecordClick(p.X, p.Y); err != nil {
			return err
		}
	}
	for _, p := range pathPoints {
		if err := sess.RecordClick(p.X, p.Y); err != nil {
			return err
		}
	}

	m := sess.CurrentMeasurement()
	if !m.Valid {
		return fmt.Errorf("measurement undefined: %s", m.Guidance.Message())
	}

	if verbose {
		scale, _ := sess.ScaleFactor()
		fmt.Printf("Reference: %.2f px = %g %s (scale %.6f %s/px)\n",
			refPoints[0].Distance(refPoints[1]), refLength, unit.Label(), scale, unit.Label())
		for i := 1; i < len(pathPoints); i++ {
			seg := pathPoints[i-1].Distance(pathPoints[i])
			fmt.Printf("Segment %d: %.2f px = %.2f %s\n", i, seg, seg*scale, unit.Label())
		}
		fmt.Printf("Path: %.2f px\n", sess.PixelLength())
	}

	fmt.Println(m.String())
	return nil
}

// parsePoints parses a semicolon-separated list of "x,y" pairs.
func parsePoints(list string) ([]geometry.Point2D, error) {
	var points []geometry.Point2D
	for _, pair := range strings.Split(list, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("point %q is not an x,y pair", pair)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %v", pair, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %v", pair, err)
		}
		points = append(points, geometry.NewPoint2D(x, y))
	}
	return points, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
