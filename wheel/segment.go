package wheel

import "image"

// Segment is one wedge of the wheel as supplied by the host.
type Segment struct {
	// Label is the text drawn in the wedge. May be empty.
	Label string `yaml:"label"`

	// Weight is the number of equal-sized slots this segment occupies
	// when computing landing angles. Values below 1 are treated as 1.
	// A segment with Weight 3 is drawn as one wedge spanning three slots.
	Weight int `yaml:"weight"`

	// Style overrides. Empty fields fall back to the palette entry for
	// this segment's index, then to the wheel-wide defaults.
	Style SegmentStyle `yaml:"style"`

	// Image is an optional decorative picture for the wedge.
	Image *SegmentImage `yaml:"image"`
}

// SegmentStyle holds per-segment presentation overrides.
type SegmentStyle struct {
	BackgroundColor string  `yaml:"background_color"`
	TextColor       string  `yaml:"text_color"`
	FontFamily      string  `yaml:"font_family"`
	FontSize        float64 `yaml:"font_size"`
	FontWeight      string  `yaml:"font_weight"`
	FontStyle       string  `yaml:"font_style"`
}

// SegmentImage describes a decorative image inside a wedge.
// The pixel data is loaded asynchronously after the wheel receives the
// segment; Handle stays nil until then.
type SegmentImage struct {
	URI            string  `yaml:"uri"`
	OffsetX        float64 `yaml:"offset_x"`
	OffsetY        float64 `yaml:"offset_y"`
	Landscape      bool    `yaml:"landscape"`
	SizeMultiplier float64 `yaml:"size_multiplier"`

	// Handle is the decoded image, set by the load event. Never set by
	// the host.
	Handle image.Image `yaml:"-"`
}

// segmentState is a segment after normalization: every style field
// resolved through the fallback chain, plus the image load record for
// this index.
type segmentState struct {
	label      string
	weight     int
	background string
	textColor  string
	fontFamily string
	fontSize   float64
	fontWeight string
	fontStyle  string

	image        *SegmentImage
	imageLoaded  bool
	imagePending bool
	loadSeq      uint64
}
