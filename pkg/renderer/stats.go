package renderer

import (
	"fmt"
	"io"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderStats collects counters across all frames of a render run
type RenderStats struct {
	Frames    int
	SubFrames int
	Width     int
	Height    int
	Duration  time.Duration

	Rays    atomic.Uint64
	Photons atomic.Uint64
}

// Summary writes a table with the collected counters to w
func (s *RenderStats) Summary(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"Frames", strconv.Itoa(s.Frames)})
	table.Append([]string{"Sub-frames", strconv.Itoa(s.SubFrames)})
	table.Append([]string{"Rays cast", strconv.FormatUint(s.Rays.Load(), 10)})
	table.Append([]string{"Photons stored", strconv.FormatUint(s.Photons.Load(), 10)})
	table.Append([]string{"Render time", s.Duration.Round(time.Millisecond).String()})
	table.Render()
}
