package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/umputun/overlay/pkg/domain"
)

// controlBinding maps a UI control to a store operation.
// Value controls build a patch from the submitted value, action controls run a command.
type controlBinding struct {
	patch  func(value string) (domain.Patch, error)
	action func(s *Server, r *http.Request) (notice, error)
}

// controlBindings is keyed by control id as used in the preview page
var controlBindings = map[string]controlBinding{
	"writingStyle": {patch: func(v string) (domain.Patch, error) { return domain.Patch{WritingStyle: &v}, nil }},
	"theme":        {patch: func(v string) (domain.Patch, error) { return domain.Patch{Theme: &v}, nil }},
	"fontStyle":    {patch: func(v string) (domain.Patch, error) { return domain.Patch{FontStyle: &v}, nil }},
	"fontSize": {patch: func(v string) (domain.Patch, error) {
		size, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "%"))
		if err != nil {
			return domain.Patch{}, fmt.Errorf("invalid font size %q", v)
		}
		fs := domain.FontSize(size)
		return domain.Patch{FontSize: &fs}, nil
	}},
	"livePreview":   {patch: togglePatch(func(p *domain.Patch, b *bool) { p.LivePreview = b })},
	"highContrast":  {patch: togglePatch(func(p *domain.Patch, b *bool) { p.HighContrast = b })},
	"reducedMotion": {patch: togglePatch(func(p *domain.Patch, b *bool) { p.ReducedMotion = b })},
	"customBackground": {patch: func(v string) (domain.Patch, error) {
		return domain.Patch{CustomColors: &domain.ColorsPatch{Background: &v}}, nil
	}},
	"customText": {patch: func(v string) (domain.Patch, error) {
		return domain.Patch{CustomColors: &domain.ColorsPatch{Text: &v}}, nil
	}},
	"customAccent": {patch: func(v string) (domain.Patch, error) {
		return domain.Patch{CustomColors: &domain.ColorsPatch{Accent: &v}}, nil
	}},

	"applyOverlay": {action: func(s *Server, _ *http.Request) (notice, error) { return s.apply(), nil }},
	"resetOverlay": {action: func(s *Server, _ *http.Request) (notice, error) { return s.reset(), nil }},
	"undoOverlay":  {action: func(s *Server, _ *http.Request) (notice, error) { return s.undo() }},
	"redoOverlay":  {action: func(s *Server, _ *http.Request) (notice, error) { return s.redo() }},
	"saveConfig":   {action: func(s *Server, r *http.Request) (notice, error) { return s.save(r) }},
}

// togglePatch builds a patch for a checkbox control, an absent value means unchecked
func togglePatch(set func(p *domain.Patch, b *bool)) func(string) (domain.Patch, error) {
	return func(v string) (domain.Patch, error) {
		var on bool
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "off":
			on = false
		case "on":
			on = true
		default:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return domain.Patch{}, fmt.Errorf("invalid toggle value %q", v)
			}
			on = b
		}
		var p domain.Patch
		set(&p, &on)
		return p, nil
	}
}

// controlHandler dispatches a control change through the binding table.
// HTMX requests get the preview fragment back, others get JSON state.
func (s *Server) controlHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	binding, ok := controlBindings[id]
	if !ok {
		renderError(w, r, fmt.Errorf("unknown control %q", id), http.StatusNotFound)
		return
	}

	var n *notice
	switch {
	case binding.patch != nil:
		p, err := binding.patch(r.FormValue("value"))
		if err != nil {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		s.store.Update(p)
	case binding.action != nil:
		res, err := binding.action(s, r)
		if err != nil {
			code := http.StatusInternalServerError
			if errors.Is(err, errNothingToUndo) || errors.Is(err, errNothingToRedo) {
				code = http.StatusConflict
			}
			if code == http.StatusInternalServerError {
				log.Printf("[ERROR] control %s failed: %v", id, err)
			}
			if isHTMX(r) {
				s.renderPreviewArea(w, &notice{Text: err.Error(), Kind: noticeError})
				return
			}
			renderError(w, r, err, code)
			return
		}
		n = &res
	}

	if isHTMX(r) {
		s.renderPreviewArea(w, n)
		return
	}
	renderJSON(w, r, http.StatusOK, s.state(n))
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
