package httpapi

import (
	"io"

	"github.com/inkwell-labs/paperchat/internal/core/ports/driven"
)

// progressReader counts bytes as the request body is streamed and reports
// whole-percent increases. Values are non-decreasing; 100 is emitted once
// the final byte has been read.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	lastNotify int
	onProgress driven.ProgressFunc
}

// newProgressReader wraps r. onProgress may be nil, in which case r is
// returned untouched.
func newProgressReader(r io.Reader, total int64, onProgress driven.ProgressFunc) io.Reader {
	if onProgress == nil || total <= 0 {
		return r
	}
	return &progressReader{r: r, total: total, lastNotify: -1, onProgress: onProgress}
}

// Read implements io.Reader.
func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.read += int64(n)
		percent := int(p.read * 100 / p.total)
		if percent > 100 {
			percent = 100
		}
		if percent > p.lastNotify {
			p.lastNotify = percent
			p.onProgress(percent)
		}
	}
	return n, err
}
