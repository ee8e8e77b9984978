package frame

// Brightness is a display intensity level between MinBrightness and
// MaxBrightness. The driver turns it into a per-row off-dwell, so higher
// levels mean a shorter dark period per scan, not true PWM.
type Brightness struct {
	level uint8
}

// Brightness bounds. Eleven discrete levels, 0 (off) through 10 (full).
const (
	minBrightness uint8 = 0
	maxBrightness uint8 = 10
)

var (
	// MinBrightness turns the LEDs off entirely.
	MinBrightness = Brightness{level: minBrightness}
	// MaxBrightness is full intensity.
	MaxBrightness = Brightness{level: maxBrightness}
	// DefaultBrightness is the mid-scale power-on level.
	DefaultBrightness = Brightness{level: 5}
)

// NewBrightness returns a brightness clamped into [MinBrightness,
// MaxBrightness]. Out-of-range input is clamped, never an error.
func NewBrightness(level uint8) Brightness {
	if level > maxBrightness {
		level = maxBrightness
	}
	return Brightness{level: level}
}

// Level returns the numeric level, 0..10.
func (b Brightness) Level() uint8 {
	return b.level
}

// Inc raises the level by delta, saturating at MaxBrightness.
func (b *Brightness) Inc(delta uint8) {
	room := maxBrightness - b.level
	if delta > room {
		delta = room
	}
	b.level += delta
}

// Dec lowers the level by delta, saturating at MinBrightness.
func (b *Brightness) Dec(delta uint8) {
	if delta > b.level {
		delta = b.level
	}
	b.level -= delta
}
