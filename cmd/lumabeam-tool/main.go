// Command lumabeam-tool is a demo CLI for the lumabeam codec: it encodes
// a payload to a trace of signal changes, or replays such a trace through
// a decoder and prints the recovered payload and stats. It is a thin
// driver over the core package, in the spirit of the teacher pack's
// examples/transmitter, examples/receiver, and cmd/pm5ctl demos — not
// part of the core itself.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kpavlenko/lumabeam"
	"github.com/kpavlenko/lumabeam/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(ctx, os.Args[2:])
	case "decode":
		err = runDecode(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "lumabeam-tool:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: lumabeam-tool encode|decode [flags]")
}

// traceEntry is the JSON-lines representation of a SignalChange used to
// pass traces between encode and decode.
type traceEntry struct {
	Level    string `json:"level"`
	Duration int64  `json:"duration"`
}

func runEncode(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a YAML ServiceConfig (defaults to the wire-format defaults)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	payload, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return fmt.Errorf("read payload from stdin: %w", err)
	}

	enc := lumabeam.NewEncoder(cfg.Protocol)
	if !enc.Valid() {
		return fmt.Errorf("invalid protocol configuration")
	}

	changes, ok := enc.Encode(payload)
	if !ok {
		return fmt.Errorf("encode failed: payload of %d bytes exceeds the configured cap", len(payload))
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	enc2 := json.NewEncoder(w)
	for _, c := range changes {
		if err := enc2.Encode(traceEntry{Level: c.Level.String(), Duration: c.Duration}); err != nil {
			return fmt.Errorf("write trace entry: %w", err)
		}
	}
	return nil
}

func runDecode(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a YAML ServiceConfig (defaults to the wire-format defaults)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	frames := 0
	dec := lumabeam.NewDecoder(cfg.Protocol, func(payload []byte, _ any) {
		frames++
		fmt.Printf("frame %d: %q (% x)\n", frames, payload, payload)
	}, nil)
	if !dec.Valid() {
		return fmt.Errorf("invalid protocol configuration")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var entry traceEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return fmt.Errorf("parse trace entry: %w", err)
		}
		level, err := lumabeam.ParseLightLevel(entry.Level)
		if err != nil {
			return err
		}
		dec.Feed(lumabeam.SignalChange{Level: level, Duration: entry.Duration})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read trace: %w", err)
	}

	stats := dec.Stats()
	fmt.Printf("frames decoded: %d\n", stats.FramesDecoded)
	fmt.Printf("rejections: magic=%d header=%d length=%d crc=%d ender=%d duration=%d mark=%d truncated=%d\n",
		stats.MagicMismatches, stats.HeaderRejects, stats.LengthViolations, stats.CrcFailures,
		stats.EnderMismatches, stats.DurationRejections, stats.MarkRejections, stats.TruncatedFrames)
	return nil
}

func loadConfig(path string) (config.ServiceConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
