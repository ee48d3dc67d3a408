package lumabeam

import "fmt"

// LightLevel is one of the five discrete levels a transmitter can hold a
// pulse at: the idle/space level Off, or one of four marks used to carry a
// 2-bit symbol.
type LightLevel int

const (
	Off LightLevel = iota
	White
	Red
	Green
	Blue
)

func (l LightLevel) String() string {
	switch l {
	case Off:
		return "Off"
	case White:
		return "White"
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	default:
		return "Unknown"
	}
}

// SignalChange describes one pulse: a level held for duration microseconds.
// duration must be strictly positive; a non-positive duration is silently
// ignored by Decoder.Feed rather than treated as a protocol error, since it
// cannot correspond to any real transition on the wire.
type SignalChange struct {
	Level    LightLevel
	Duration int64 // microseconds
}

// ParseLightLevel is the inverse of String, used by YAML config loading
// and CLI trace parsing so a level can be written as a name.
func ParseLightLevel(name string) (LightLevel, error) {
	switch name {
	case "Off":
		return Off, nil
	case "White":
		return White, nil
	case "Red":
		return Red, nil
	case "Green":
		return Green, nil
	case "Blue":
		return Blue, nil
	default:
		return Off, fmt.Errorf("unknown light level %q", name)
	}
}

// UnmarshalYAML lets ProtocolConfig.PreambleColor be written as a name
// (e.g. "White") in configuration files.
func (l *LightLevel) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	level, err := ParseLightLevel(name)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// MarshalYAML renders a LightLevel as its name.
func (l LightLevel) MarshalYAML() (any, error) {
	return l.String(), nil
}

// symbolToColor maps a 2-bit symbol to the mark color that carries it on
// the wire. The top two bits of each frame byte are transmitted first.
var symbolToColor = [4]LightLevel{Red, Green, Blue, White}

// colorToSymbol is the inverse of symbolToColor. Off carries no symbol.
func colorToSymbol(level LightLevel) (byte, bool) {
	switch level {
	case Red:
		return 0, true
	case Green:
		return 1, true
	case Blue:
		return 2, true
	case White:
		return 3, true
	default:
		return 0, false
	}
}
