// Command shapeinfo builds every body in a shape file and prints what the
// synchronizer would see: parts, mass and the cached sprite offset.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/milk9111/spritesync/common"
	"github.com/milk9111/spritesync/physics"
	"github.com/milk9111/spritesync/shapes"
	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "", "shape definition JSON file (defaults to the embedded demo shapes)")
	verbose := flag.Bool("v", false, "log skipped fixtures")
	flag.Parse()

	level := "error"
	if *verbose {
		level = "debug"
	}
	logger, err := common.NewLogger(level, "console")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	lib, err := load(*file)
	if err != nil {
		logger.Fatal("load shapes", zap.Error(err))
	}
	if err := report(os.Stdout, lib, logger); err != nil {
		logger.Fatal("report", zap.Error(err))
	}
}

func load(file string) (*shapes.Library, error) {
	if file == "" {
		return shapes.Load("demo.json")
	}
	return shapes.LoadFile(file)
}

func report(out io.Writer, lib *shapes.Library, logger *zap.Logger) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPARTS\tSTATIC\tSENSOR\tMASS\tWIDTH\tHEIGHT\tOFFSET")
	for _, name := range lib.Names() {
		body, err := lib.Build(name, 0, 0, physics.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\t-\t%v\n", name, err)
			continue
		}
		bb := body.Bounds()
		off := physics.ComputeOffset(body)
		fmt.Fprintf(tw, "%s\t%d\t%t\t%t\t%.3f\t%.1f\t%.1f\t(%.2f, %.2f)\n",
			name, len(body.Parts()), body.IsStatic(), body.IsSensor(), body.Mass(),
			bb.R-bb.L, bb.T-bb.B, off.X, off.Y)
	}
	return tw.Flush()
}
