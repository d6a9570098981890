// Package pdf implements the driven.Inspector port using pdfcpu.
// It runs the local pre-flight on files before upload: anything the backend
// would reject as not-a-PDF is rejected here first, saving the round trip.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driven"
)

// Ensure Inspector implements the interface.
var _ driven.Inspector = (*Inspector)(nil)

// Inspector validates local PDFs and reads their page count.
type Inspector struct{}

// NewInspector creates a new PDF inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect validates that path is a readable PDF and returns its metadata.
func (i *Inspector) Inspect(ctx context.Context, path string) (*driven.FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrNotPDF, path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotPDF, filepath.Base(path))
	}

	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrNotPDF, filepath.Base(path), err)
	}

	return &driven.FileInfo{
		Name:  filepath.Base(path),
		Size:  fi.Size(),
		Pages: pdfCtx.PageCount,
	}, nil
}
