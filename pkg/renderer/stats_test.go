package renderer

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestRenderStats_Summary(t *testing.T) {
	stats := &RenderStats{
		Frames:    3,
		SubFrames: 2,
		Width:     640,
		Height:    480,
		Duration:  1500 * time.Millisecond,
	}
	stats.Rays.Store(1234)
	stats.Photons.Store(56)

	var buf bytes.Buffer
	stats.Summary(&buf)
	out := buf.String()

	for _, want := range []string{"640x480", "1234", "56", "1.5s", "Rays cast", "Photons stored"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected summary to contain %q, got:\n%s", want, out)
		}
	}
}
