package domain

var themeClasses = map[string]string{
	"default":  "",
	"dark":     "theme-dark",
	"light":    "theme-light",
	"colorful": "theme-colorful",
	"minimal":  "theme-minimal",
	"custom":   "theme-custom",
}

var fontFamilies = map[string]string{
	"default":    "inherit",
	"serif":      `Georgia, "Times New Roman", serif`,
	"sans-serif": `"Helvetica Neue", Arial, sans-serif`,
	"monospace":  `"Courier New", Consolas, monospace`,
	"playful":    `"Comic Sans MS", cursive`,
}

// View is what the preview region renders for given settings
type View struct {
	ThemeClass    string        `json:"themeClass"`
	FontClass     string        `json:"fontClass"`
	FontFamily    string        `json:"fontFamily"`
	FontSize      string        `json:"fontSize"`
	CustomColors  *CustomColors `json:"customColors,omitempty"` // set only for the custom theme
	HighContrast  bool          `json:"highContrast"`
	ReducedMotion bool          `json:"reducedMotion"`
	LivePreview   bool          `json:"livePreview"`
	Content       Content       `json:"content"`
}

// Classes returns all CSS classes for the preview region
func (v View) Classes() []string {
	res := []string{}
	if v.ThemeClass != "" {
		res = append(res, v.ThemeClass)
	}
	if v.FontClass != "" {
		res = append(res, v.FontClass)
	}
	if v.HighContrast {
		res = append(res, "high-contrast")
	}
	if v.ReducedMotion {
		res = append(res, "reduced-motion")
	}
	return res
}

// Render maps settings to the view, settings are normalized first
func Render(s Settings) View {
	s = s.Normalize()
	v := View{
		ThemeClass:    themeClasses[s.Theme],
		FontFamily:    fontFamilies[s.FontStyle],
		FontSize:      s.FontSize.Percent(),
		HighContrast:  s.HighContrast,
		ReducedMotion: s.ReducedMotion,
		LivePreview:   s.LivePreview,
		Content:       ContentFor(s.WritingStyle),
	}
	if s.FontStyle != Variant {
		v.FontClass = "font-" + s.FontStyle
	}
	if s.Theme == ThemeCustom {
		colors := s.CustomColors
		v.CustomColors = &colors
	}
	return v
}
