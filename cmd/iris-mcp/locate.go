package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/ironsheep/iris-locator-mcp/internal/imaging"
	"github.com/ironsheep/iris-locator-mcp/internal/location"
)

// runLocate processes each image file named in args and prints one summary
// line per candidate to w. Files that fail to load are logged and skipped.
func runLocate(args []string, w io.Writer, presets *location.PresetSet, logger *zap.Logger) error {
	fs := flag.NewFlagSet("locate", flag.ContinueOnError)
	fs.SetOutput(w)
	preset := fs.String("preset", location.DefaultPreset, "parameter preset")
	outDir := fs.String("out", "", "directory for overlay images")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("no image files given")
	}

	p, err := presets.Get(*preset)
	if err != nil {
		return err
	}
	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	name := color.New(color.Bold)
	found := color.New(color.FgGreen)
	none := color.New(color.FgYellow)

	cache := imaging.NewImageCache()
	for _, path := range fs.Args() {
		img, err := cache.Load(path)
		if err != nil {
			logger.Warn("skipping image", zap.String("path", path), zap.Error(err))
			continue
		}

		res, err := location.Locate(img, p)
		if err != nil {
			return err
		}
		logger.Debug("located",
			zap.String("run_id", res.Diagnostics.RunID),
			zap.String("path", path),
			zap.Int("candidates", len(res.Candidates)))

		name.Fprintf(w, "%s", path)
		if len(res.Candidates) == 0 {
			none.Fprintf(w, ": no candidates\n")
		} else {
			found.Fprintf(w, ": %d candidate(s)\n", len(res.Candidates))
		}
		for i, c := range res.Candidates {
			fmt.Fprintf(w, "  #%d center=(%.1f, %.1f) radius=%.1f votes=%d\n", i+1, c.X, c.Y, c.Radius, c.Votes)
		}

		if *outDir != "" {
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			out := filepath.Join(*outDir, base+"_overlay.png")
			if err := imaging.Save(res.Overlay, out); err != nil {
				return err
			}
			logger.Debug("wrote overlay", zap.String("path", out))
		}
	}
	return nil
}
