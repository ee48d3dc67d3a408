// Package driver defines the boundary between the core codec and the
// external light-emitting/observing hardware, which is explicitly out of
// scope for the codec itself (LED driver I/O, GPIO, IR/visible-light
// transceivers). It exists so hosts can exercise Encoder/Decoder
// end-to-end without real hardware.
package driver

import (
	"context"

	"github.com/kpavlenko/lumabeam"
)

// ChannelDriver is the boundary a host implements to bridge the codec to
// real (or simulated) light-emitting hardware: Emit drives one pulse,
// Observe blocks until the next pulse is seen or ctx is done.
type ChannelDriver interface {
	Emit(change lumabeam.SignalChange) error
	Observe(ctx context.Context) (lumabeam.SignalChange, error)
}
