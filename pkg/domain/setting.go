package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// font size bounds in percent
const (
	MinFontSize     = 50
	MaxFontSize     = 200
	DefaultFontSize = 100
)

// Variant is the fallback value for every enumerated setting
const Variant = "default"

// legal values for enumerated settings
var (
	WritingStyles = []string{"default", "funny", "professional", "simple", "detailed"}
	Themes        = []string{"default", "dark", "light", "colorful", "minimal", "custom"}
	FontStyles    = []string{"default", "serif", "sans-serif", "monospace", "playful"}
)

// ThemeCustom enables custom colors in the rendered view
const ThemeCustom = "custom"

// Setting represents a key-value configuration setting
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// CustomColors holds user-picked CSS colors, not validated
type CustomColors struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Accent     string `json:"accent"`
}

// Settings is the complete set of presentation options
type Settings struct {
	WritingStyle  string       `json:"writingStyle"`
	Theme         string       `json:"theme"`
	FontStyle     string       `json:"fontStyle"`
	FontSize      FontSize     `json:"fontSize"`
	LivePreview   bool         `json:"livePreview"`
	HighContrast  bool         `json:"highContrast"`
	ReducedMotion bool         `json:"reducedMotion"`
	CustomColors  CustomColors `json:"customColors"`
}

// Defaults returns canonical default settings
func Defaults() Settings {
	return Settings{
		WritingStyle: Variant,
		Theme:        Variant,
		FontStyle:    Variant,
		FontSize:     DefaultFontSize,
		LivePreview:  true,
		CustomColors: CustomColors{
			Background: "#ffffff",
			Text:       "#333333",
			Accent:     "#007bff",
		},
	}
}

// Normalize coerces unknown enum values to default and clamps font size.
// Empty custom colors are filled from defaults.
func (s Settings) Normalize() Settings {
	s.WritingStyle = oneOf(s.WritingStyle, WritingStyles)
	s.Theme = oneOf(s.Theme, Themes)
	s.FontStyle = oneOf(s.FontStyle, FontStyles)
	s.FontSize = s.FontSize.Clamp()

	def := Defaults().CustomColors
	if s.CustomColors.Background == "" {
		s.CustomColors.Background = def.Background
	}
	if s.CustomColors.Text == "" {
		s.CustomColors.Text = def.Text
	}
	if s.CustomColors.Accent == "" {
		s.CustomColors.Accent = def.Accent
	}
	return s
}

// Equal reports whether two settings are identical
func (s Settings) Equal(other Settings) bool {
	return s == other
}

// oneOf returns v if it is in the legal set, otherwise the default variant
func oneOf(v string, legal []string) string {
	for _, l := range legal {
		if v == l {
			return v
		}
	}
	return Variant
}

// IsLegal checks if the value belongs to the legal set
func IsLegal(v string, legal []string) bool {
	return oneOf(v, legal) == v
}

// FontSize is a percentage; decodes from JSON numbers and numeric strings
type FontSize int

// Clamp limits font size to [MinFontSize, MaxFontSize]
func (f FontSize) Clamp() FontSize {
	switch {
	case f < MinFontSize:
		return MinFontSize
	case f > MaxFontSize:
		return MaxFontSize
	}
	return f
}

// Percent returns CSS percentage, e.g. "120%"
func (f FontSize) Percent() string {
	return fmt.Sprintf("%d%%", int(f))
}

// UnmarshalJSON accepts 120, 120.0 and "120"; anything else falls back to the default size.
// Out of range numbers are clamped before conversion, so huge values can't overflow int.
func (f *FontSize) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode font size: %w", err)
		}
		raw = strings.TrimSuffix(strings.TrimSpace(s), "%")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*f = DefaultFontSize
		return nil
	}
	*f = FontSize(int(math.Max(MinFontSize, math.Min(MaxFontSize, v))))
	return nil
}

// Patch is a partial settings update, nil fields are left untouched
type Patch struct {
	WritingStyle  *string      `json:"writingStyle,omitempty"`
	Theme         *string      `json:"theme,omitempty"`
	FontStyle     *string      `json:"fontStyle,omitempty"`
	FontSize      *FontSize    `json:"fontSize,omitempty"`
	LivePreview   *bool        `json:"livePreview,omitempty"`
	HighContrast  *bool        `json:"highContrast,omitempty"`
	ReducedMotion *bool        `json:"reducedMotion,omitempty"`
	CustomColors  *ColorsPatch `json:"customColors,omitempty"`
}

// ColorsPatch is a partial custom colors update
type ColorsPatch struct {
	Background *string `json:"background,omitempty"`
	Text       *string `json:"text,omitempty"`
	Accent     *string `json:"accent,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.WritingStyle == nil && p.Theme == nil && p.FontStyle == nil && p.FontSize == nil &&
		p.LivePreview == nil && p.HighContrast == nil && p.ReducedMotion == nil &&
		(p.CustomColors == nil || (p.CustomColors.Background == nil && p.CustomColors.Text == nil &&
			p.CustomColors.Accent == nil))
}

// Apply merges the patch into settings and normalizes the result
func (p Patch) Apply(s Settings) Settings {
	if p.WritingStyle != nil {
		s.WritingStyle = *p.WritingStyle
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.FontStyle != nil {
		s.FontStyle = *p.FontStyle
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.LivePreview != nil {
		s.LivePreview = *p.LivePreview
	}
	if p.HighContrast != nil {
		s.HighContrast = *p.HighContrast
	}
	if p.ReducedMotion != nil {
		s.ReducedMotion = *p.ReducedMotion
	}
	if c := p.CustomColors; c != nil {
		if c.Background != nil {
			s.CustomColors.Background = *c.Background
		}
		if c.Text != nil {
			s.CustomColors.Text = *c.Text
		}
		if c.Accent != nil {
			s.CustomColors.Accent = *c.Accent
		}
	}
	return s.Normalize()
}

// Record is the persisted form of settings
type Record struct {
	Settings  Settings  `json:"settings"`
	Timestamp time.Time `json:"timestamp"`
}

// SavedConfig describes an entry of the save log
type SavedConfig struct {
	ID           int64     `json:"id"`
	Theme        string    `json:"theme"`
	WritingStyle string    `json:"writingStyle"`
	SavedAt      time.Time `json:"savedAt"`
}
