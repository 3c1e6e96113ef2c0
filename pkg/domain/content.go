package domain

// Content is the preview text for one writing-style variant
type Content struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

var contentVariations = map[string]Content{
	"default": {
		Title: "Sample Content",
		Description: "This is a sample paragraph to demonstrate how the overlay affects text styling. " +
			"You can see changes in font, theme, and writing style here.",
		Features: []string{
			"Feature 1: Dynamic font changes",
			"Feature 2: Theme modifications",
			"Feature 3: Writing style transformation",
		},
	},
	"funny": {
		Title: "🎭 Sample Content (Now with 100% more fun!)",
		Description: "Behold! This magical paragraph shows you how our awesome overlay makes boring websites " +
			"suddenly interesting. It's like giving your text a personality makeover!",
		Features: []string{
			"✨ Feature 1: Fonts that actually look good (shocking!)",
			"🎨 Feature 2: Themes that don't hurt your eyes",
			"🚀 Feature 3: Writing that doesn't put you to sleep",
		},
	},
	"professional": {
		Title: "Technical Demonstration Content",
		Description: "This paragraph serves as a comprehensive demonstration of the overlay system's capabilities " +
			"in modifying textual presentation and stylistic elements across web interfaces.",
		Features: []string{
			"Core Feature 1: Advanced typography management system",
			"Core Feature 2: Comprehensive theme application framework",
			"Core Feature 3: Dynamic content transformation engine",
		},
	},
	"simple": {
		Title: "Easy Example",
		Description: "This text shows how the overlay changes how websites look. " +
			"You can change fonts, colors, and how text is written.",
		Features: []string{
			"Change fonts easily",
			"Pick different colors and themes",
			"Make text easier to read",
		},
	},
	"detailed": {
		Title: "Comprehensive Sample Content with Step-by-Step Guide",
		Description: "This detailed paragraph demonstrates the complete functionality of the overlay system. " +
			"Step 1: Select your preferences from the control panel. " +
			"Step 2: Watch the preview update in real-time. " +
			"Step 3: Apply changes to see the full effect.",
		Features: []string{
			"Feature 1: Dynamic font changes - Choose from serif, sans-serif, monospace, or playful fonts with real-time preview",
			"Feature 2: Theme modifications - Apply dark, light, colorful, or minimal themes with instant visual feedback",
			"Feature 3: Writing style transformation - Convert content between professional, funny, simple, or detailed styles",
		},
	},
}

// WritingStyleHints describes what each writing style does to the content
var WritingStyleHints = map[string]string{
	"default":      "Keep the original text style",
	"funny":        "Make it humorous and engaging",
	"professional": "Use formal, business-appropriate language",
	"simple":       "Remove jargon and simplify complex terms",
	"detailed":     "Add comprehensive explanations and clear step-by-step instructions",
}

// ContentFor returns the content variant for a writing style, unknown styles get the default variant.
// The returned features slice is a copy.
func ContentFor(style string) Content {
	c, ok := contentVariations[style]
	if !ok {
		c = contentVariations[Variant]
	}
	features := make([]string, len(c.Features))
	copy(features, c.Features)
	c.Features = features
	return c
}
