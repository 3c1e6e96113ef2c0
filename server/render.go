package server

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/umputun/overlay/pkg/domain"
)

const (
	templatePage    = "preview.html"
	templatePreview = "preview-area"
)

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

// option is a select entry on the preview page
type option struct {
	Value    string
	Label    string
	Selected bool
}

type previewData struct {
	Settings      domain.Settings
	View          domain.View
	Classes       string
	Colors        *colorStyle
	CanUndo       bool
	CanRedo       bool
	Notice        *notice
	WritingStyles []option
	Themes        []option
	FontStyles    []option
	Version       string
}

func (s *Server) previewData(n *notice) previewData {
	st := s.store.Snapshot()
	settings, view := st.Settings, st.View
	return previewData{
		Settings:      settings,
		View:          view,
		Classes:       strings.Join(view.Classes(), " "),
		Colors:        safeColors(view.CustomColors),
		CanUndo:       st.CanUndo,
		CanRedo:       st.CanRedo,
		Notice:        n,
		WritingStyles: options(domain.WritingStyles, settings.WritingStyle, domain.WritingStyleHints),
		Themes:        options(domain.Themes, settings.Theme, nil),
		FontStyles:    options(domain.FontStyles, settings.FontStyle, nil),
		Version:       s.version,
	}
}

// cssColorPatterns are the custom color forms passed to the page as is
var cssColorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`),
	regexp.MustCompile(`^(?:rgba?|hsla?)\(\s*-?[0-9.]+(?:deg|%)?(?:\s*[,/]?\s*-?[0-9.]+%?){2,3}\s*\)$`),
	regexp.MustCompile(`^[a-zA-Z]{3,24}$`), // named colors
}

// colorStyle holds custom colors checked for use in a style attribute
type colorStyle struct {
	Background template.CSS
	Text       template.CSS
	Accent     template.CSS
}

// safeColors returns nil for themes without custom colors.
// Values not matching any known color form are replaced with defaults.
func safeColors(c *domain.CustomColors) *colorStyle {
	if c == nil {
		return nil
	}
	def := domain.Defaults().CustomColors
	return &colorStyle{
		Background: safeColor(c.Background, def.Background),
		Text:       safeColor(c.Text, def.Text),
		Accent:     safeColor(c.Accent, def.Accent),
	}
}

func safeColor(v, fallback string) template.CSS {
	v = strings.TrimSpace(v)
	for _, re := range cssColorPatterns {
		if re.MatchString(v) {
			return template.CSS(v) //nolint:gosec // matched against a strict color pattern
		}
	}
	return template.CSS(fallback) //nolint:gosec // default colors are constants
}

// options builds select entries, hints are appended to labels when present
func options(values []string, selected string, hints map[string]string) []option {
	res := make([]option, 0, len(values))
	for _, v := range values {
		label := strings.ToUpper(v[:1]) + v[1:]
		if hint, ok := hints[v]; ok {
			label += " - " + hint
		}
		res = append(res, option{Value: v, Label: label, Selected: v == selected})
	}
	return res
}

// previewPageHandler renders the full page with controls and preview
func (s *Server) previewPageHandler(w http.ResponseWriter, _ *http.Request) {
	s.renderTemplate(w, templatePage, s.previewData(nil))
}

// previewAreaHandler renders the preview fragment only
func (s *Server) previewAreaHandler(w http.ResponseWriter, _ *http.Request) {
	s.renderPreviewArea(w, nil)
}

func (s *Server) renderPreviewArea(w http.ResponseWriter, n *notice) {
	s.renderTemplate(w, templatePreview, s.previewData(n))
}

// renderTemplate executes into a buffer first so a failed render doesn't leave a partial page
func (s *Server) renderTemplate(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[ERROR] failed to render %s: %v", name, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[WARN] failed to write %s: %v", name, err)
	}
}
