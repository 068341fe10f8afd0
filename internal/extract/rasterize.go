package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// rasterDPI balances OCR accuracy against upload size for the external
// recognition services.
const rasterDPI = 150

// rasterTempDir creates a scoped temporary directory for per-page rasters
// and returns a cleanup func that removes it.
func rasterTempDir() (string, func(), error) {
	dir := filepath.Join(os.TempDir(), "slidegen-raster-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", nil, NewExtractionError("rasterTempDir", err, "failed to create temp dir")
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}

// RasterizePages renders every page of the PDF at pdfPath to a PNG in
// outDir using pdftoppm, returning the image paths in ascending page order.
func RasterizePages(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	const op = "RasterizePages"

	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, NewExtractionError(op, ErrRasterizerNotFound, err.Error())
	}

	prefix := filepath.Join(outDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", "-png", "-r", strconv.Itoa(rasterDPI), "-q", pdfPath, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, NewExtractionError(op, err, fmt.Sprintf("pdftoppm: %s", out))
	}

	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, NewExtractionError(op, err, "failed to list rasterized pages")
	}
	if len(matches) == 0 {
		return nil, NewExtractionError(op, ErrExtractionFailed, "pdftoppm produced no pages")
	}

	// pdftoppm zero-pads page numbers to a uniform width, so a lexical
	// sort yields page order.
	sort.Strings(matches)
	return matches, nil
}
