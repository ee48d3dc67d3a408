// Package metrics exports lumabeam.DecoderStats as Prometheus metrics,
// adapted from the teacher pack's promauto-registered counters
// (skypro1111-tlv-audio-service/internal/metrics) to a poll-based
// prometheus.Collector: DecoderStats is a snapshot the core package
// never pushes anywhere, so Collect reads it fresh on every scrape
// instead of mirroring counter increments as they happen.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kpavlenko/lumabeam"
)

// StatsCollector implements prometheus.Collector over a Decoder's stats.
type StatsCollector struct {
	decoder *lumabeam.Decoder

	framesDecoded      *prometheus.Desc
	magicMismatches    *prometheus.Desc
	headerRejects      *prometheus.Desc
	lengthViolations   *prometheus.Desc
	crcFailures        *prometheus.Desc
	enderMismatches    *prometheus.Desc
	durationRejections *prometheus.Desc
	markRejections     *prometheus.Desc
	truncatedFrames    *prometheus.Desc
}

// NewStatsCollector builds a collector that polls decoder.Stats() on
// every Collect call. Call prometheus.Registerer.MustRegister (or
// RegisterDecoderStats below) to wire it into a registry.
func NewStatsCollector(decoder *lumabeam.Decoder) *StatsCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("lumabeam_decoder_"+name, help, nil, nil)
	}
	return &StatsCollector{
		decoder:            decoder,
		framesDecoded:      desc("frames_decoded_total", "Frames successfully decoded"),
		magicMismatches:    desc("magic_mismatches_total", "Frames rejected for a bad magic value"),
		headerRejects:      desc("header_rejects_total", "Frames rejected for a bad header"),
		lengthViolations:   desc("length_violations_total", "Frames rejected for an oversized payload length"),
		crcFailures:        desc("crc_failures_total", "Frames rejected for a CRC mismatch"),
		enderMismatches:    desc("ender_mismatches_total", "Frames rejected for a bad ender"),
		durationRejections: desc("duration_rejections_total", "Signal changes rejected for out-of-tolerance timing"),
		markRejections:     desc("mark_rejections_total", "Signal changes rejected while expecting a symbol mark"),
		truncatedFrames:    desc("truncated_frames_total", "In-progress frames abandoned before completion"),
	}
}

// RegisterDecoderStats constructs and registers a StatsCollector for
// decoder against reg in one step.
func RegisterDecoderStats(reg prometheus.Registerer, decoder *lumabeam.Decoder) (*StatsCollector, error) {
	c := NewStatsCollector(decoder)
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.framesDecoded
	ch <- c.magicMismatches
	ch <- c.headerRejects
	ch <- c.lengthViolations
	ch <- c.crcFailures
	ch <- c.enderMismatches
	ch <- c.durationRejections
	ch <- c.markRejections
	ch <- c.truncatedFrames
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.decoder.Stats()
	ch <- prometheus.MustNewConstMetric(c.framesDecoded, prometheus.CounterValue, float64(s.FramesDecoded))
	ch <- prometheus.MustNewConstMetric(c.magicMismatches, prometheus.CounterValue, float64(s.MagicMismatches))
	ch <- prometheus.MustNewConstMetric(c.headerRejects, prometheus.CounterValue, float64(s.HeaderRejects))
	ch <- prometheus.MustNewConstMetric(c.lengthViolations, prometheus.CounterValue, float64(s.LengthViolations))
	ch <- prometheus.MustNewConstMetric(c.crcFailures, prometheus.CounterValue, float64(s.CrcFailures))
	ch <- prometheus.MustNewConstMetric(c.enderMismatches, prometheus.CounterValue, float64(s.EnderMismatches))
	ch <- prometheus.MustNewConstMetric(c.durationRejections, prometheus.CounterValue, float64(s.DurationRejections))
	ch <- prometheus.MustNewConstMetric(c.markRejections, prometheus.CounterValue, float64(s.MarkRejections))
	ch <- prometheus.MustNewConstMetric(c.truncatedFrames, prometheus.CounterValue, float64(s.TruncatedFrames))
}
