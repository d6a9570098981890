package httpapi

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressReader_ReportsWholePercents(t *testing.T) {
	data := strings.Repeat("x", 1000)

	var progress []int
	r := newProgressReader(strings.NewReader(data), int64(len(data)), func(percent int) {
		progress = append(progress, percent)
	})

	buf := make([]byte, 100)
	for {
		if _, err := r.Read(buf); err == io.EOF {
			break
		}
	}

	require.NotEmpty(t, progress)
	assert.Equal(t, 100, progress[len(progress)-1])
	for i := 1; i < len(progress); i++ {
		assert.Greater(t, progress[i], progress[i-1], "each report must be a strict increase")
	}
}

func TestProgressReader_NilCallbackPassesThrough(t *testing.T) {
	src := strings.NewReader("data")

	r := newProgressReader(src, 4, nil)

	assert.Equal(t, io.Reader(src), r, "no wrapping without a callback")
}

func TestProgressReader_ZeroTotalPassesThrough(t *testing.T) {
	src := strings.NewReader("")

	r := newProgressReader(src, 0, func(int) { t.Fatal("must not be called") })

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, out)
}
