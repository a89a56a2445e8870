package main

import (
	"fmt"
	"time"

	"github.com/vanderheijden86/folio/pkg/debug"
	"github.com/vanderheijden86/folio/pkg/metrics"
)

// formatDuration renders d right-aligned for metric tables.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%6.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%6dms", d.Milliseconds())
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// metricLines formats every timing metric that recorded samples.
func metricLines() []string {
	var lines []string
	for _, s := range metrics.AllTimingStats() {
		if s.Count == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-14s n=%-6d avg=%s max=%s",
			s.Name, s.Count, formatDuration(msToDuration(s.AvgMs)), formatDuration(msToDuration(s.MaxMs))))
	}
	return lines
}

// logMetrics dumps the session's timing metrics to the debug log.
func logMetrics() {
	if !debug.Enabled() || !metrics.Enabled() {
		return
	}
	for _, line := range metricLines() {
		debug.Log("metrics: %s", line)
	}
}
