package wheel

import "time"

// Default palettes. Segments that specify no background/text color cycle
// through these by index.
var (
	DefaultBackgroundColors = []string{"#36393f", "#4f545c"}
	DefaultTextColors       = []string{"#ffffff"}
)

// Spin phase base durations before the duration multiplier is applied.
const (
	accelDuration  = 2600 * time.Millisecond
	cruiseDuration = 750 * time.Millisecond
	decelDuration  = 8000 * time.Millisecond

	// minDurationScale is the floor for the spin duration multiplier.
	// Zero or negative multipliers clamp here so the total animation
	// time stays positive and finite.
	minDurationScale = 0.01
)

// Options configures a Wheel. The zero value of every field is valid;
// omitted fields take the defaults below. Options are copied at
// construction and never mutated by the wheel.
type Options struct {
	Segments []Segment `yaml:"segments"`

	// Palettes used when a segment has no explicit color.
	BackgroundColors []string `yaml:"background_colors"`
	TextColors       []string `yaml:"text_colors"`

	OuterBorderColor string  `yaml:"outer_border_color"`
	OuterBorderWidth float64 `yaml:"outer_border_width"`

	// InnerRadius is the hub radius as a fraction of the outer radius.
	InnerRadius      float64 `yaml:"inner_radius"`
	InnerBorderColor string  `yaml:"inner_border_color"`
	InnerBorderWidth float64 `yaml:"inner_border_width"`

	RadiusLineColor string  `yaml:"radius_line_color"`
	RadiusLineWidth float64 `yaml:"radius_line_width"`

	// Wheel-wide font defaults, overridable per segment.
	FontFamily string  `yaml:"font_family"`
	FontSize   float64 `yaml:"font_size"`
	FontWeight string  `yaml:"font_weight"`
	FontStyle  string  `yaml:"font_style"`

	// PerpendicularText stands labels across the radius instead of
	// along it.
	PerpendicularText bool `yaml:"perpendicular_text"`

	// TextDistance is the label anchor distance from center as a
	// fraction of the outer radius.
	TextDistance float64 `yaml:"text_distance"`

	// SpinDuration scales all three spin phases. nil means 1.0.
	// Explicit values at or below zero clamp to 0.01.
	SpinDuration *float64 `yaml:"spin_duration"`

	// StartingSegment selects which segment rests under the pointer
	// before the first spin.
	StartingSegment int `yaml:"starting_segment"`

	// PointerImage replaces the built-in arrow. File path or http(s) URI.
	PointerImage string `yaml:"pointer_image"`

	// PointerScale multiplies the pointer's drawn size; zero means 1.
	// The offsets move the pointer from its spot above 12 o'clock, in
	// pixels.
	PointerScale   float64 `yaml:"pointer_scale"`
	PointerOffsetX float64 `yaml:"pointer_offset_x"`
	PointerOffsetY float64 `yaml:"pointer_offset_y"`

	// DisableInitialAnimation skips the settle animation on first mount;
	// the wheel appears already rotated to StartingSegment.
	DisableInitialAnimation bool `yaml:"disable_initial_animation"`

	// Size is the square bounding box in pixels.
	Size int `yaml:"size"`

	// FPS is the frame rate used when animating a spin.
	FPS int `yaml:"fps"`
}

// withDefaults returns a copy with every unset field resolved.
func (o Options) withDefaults() Options {
	if len(o.BackgroundColors) == 0 {
		o.BackgroundColors = DefaultBackgroundColors
	}
	if len(o.TextColors) == 0 {
		o.TextColors = DefaultTextColors
	}
	if o.OuterBorderColor == "" {
		o.OuterBorderColor = "#202225"
	}
	if o.OuterBorderWidth <= 0 {
		o.OuterBorderWidth = 5
	}
	if o.InnerRadius <= 0 {
		o.InnerRadius = 0.2
	}
	if o.InnerBorderColor == "" {
		o.InnerBorderColor = "#202225"
	}
	if o.InnerBorderWidth <= 0 {
		o.InnerBorderWidth = 2
	}
	if o.RadiusLineColor == "" {
		o.RadiusLineColor = "#202225"
	}
	if o.RadiusLineWidth <= 0 {
		o.RadiusLineWidth = 2
	}
	if o.FontSize <= 0 {
		o.FontSize = 16
	}
	if o.TextDistance <= 0 {
		o.TextDistance = 0.6
	}
	if o.Size <= 0 {
		o.Size = 450
	}
	if o.FPS <= 0 {
		o.FPS = 30
	}
	return o
}

// durationScale resolves the spin duration multiplier with its floor.
func (o Options) durationScale() float64 {
	if o.SpinDuration == nil {
		return 1.0
	}
	s := *o.SpinDuration
	if s < minDurationScale {
		return minDurationScale
	}
	return s
}

// SpinTimes returns the scaled accelerate, cruise and decelerate phase
// durations for one spin.
func (o Options) SpinTimes() (accel, cruise, decel time.Duration) {
	s := o.durationScale()
	accel = time.Duration(float64(accelDuration) * s)
	cruise = time.Duration(float64(cruiseDuration) * s)
	decel = time.Duration(float64(decelDuration) * s)
	return
}
