package server

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/rest"

	"github.com/umputun/overlay/pkg/domain"
	"github.com/umputun/overlay/pkg/store"
)

// notice kinds, shown by the view as toasts
const (
	noticeSuccess = "success"
	noticeInfo    = "info"
	noticeError   = "error"
)

const exportFileName = "overlay-config.json"

var (
	errNothingToUndo = errors.New("nothing to undo")
	errNothingToRedo = errors.New("nothing to redo")
)

// notice is a user-facing message about the result of an action
type notice struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

// stateResponse is returned by every endpoint that touches settings
type stateResponse struct {
	Settings domain.Settings `json:"settings"`
	View     domain.View     `json:"view"`
	CanUndo  bool            `json:"canUndo"`
	CanRedo  bool            `json:"canRedo"`
	Notice   *notice         `json:"notice,omitempty"`
}

func (s *Server) state(n *notice) stateResponse {
	st := s.store.Snapshot()
	return stateResponse{
		Settings: st.Settings,
		View:     st.View,
		CanUndo:  st.CanUndo,
		CanRedo:  st.CanRedo,
		Notice:   n,
	}
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := rest.JSON{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// getSettingsHandler returns current settings and the render view
func (s *Server) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.state(nil))
}

// updateSettingsHandler merges a partial settings object into current settings
func (s *Server) updateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var p domain.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		renderError(w, r, fmt.Errorf("invalid settings patch: %w", err), http.StatusBadRequest)
		return
	}
	if p.IsEmpty() {
		renderError(w, r, errors.New("empty settings patch"), http.StatusBadRequest)
		return
	}
	s.store.Update(p)
	renderJSON(w, r, http.StatusOK, s.state(nil))
}

// applyHandler re-renders current settings, no mutation
func (s *Server) applyHandler(w http.ResponseWriter, r *http.Request) {
	n := s.apply()
	renderJSON(w, r, http.StatusOK, s.state(&n))
}

// resetHandler restores default settings
func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	n := s.reset()
	renderJSON(w, r, http.StatusOK, s.state(&n))
}

// undoHandler steps back in the settings history
func (s *Server) undoHandler(w http.ResponseWriter, r *http.Request) {
	n, err := s.undo()
	if err != nil {
		renderError(w, r, err, http.StatusConflict)
		return
	}
	renderJSON(w, r, http.StatusOK, s.state(&n))
}

// redoHandler steps forward in the settings history
func (s *Server) redoHandler(w http.ResponseWriter, r *http.Request) {
	n, err := s.redo()
	if err != nil {
		renderError(w, r, err, http.StatusConflict)
		return
	}
	renderJSON(w, r, http.StatusOK, s.state(&n))
}

// historyHandler returns settings snapshots and the cursor position
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	snapshots, cursor := s.store.History()
	renderJSON(w, r, http.StatusOK, rest.JSON{"snapshots": snapshots, "cursor": cursor})
}

// saveHandler persists current settings
func (s *Server) saveHandler(w http.ResponseWriter, r *http.Request) {
	n, err := s.save(r)
	if err != nil {
		log.Printf("[ERROR] failed to save configuration: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, s.state(&n))
}

// listSavedHandler returns recent saved configurations
func (s *Server) listSavedHandler(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 || l > 100 {
			renderError(w, r, errors.New("invalid limit"), http.StatusBadRequest)
			return
		}
		limit = l
	}
	saved, err := s.storage.ListSaved(r.Context(), limit)
	if err != nil {
		log.Printf("[ERROR] failed to list saved configurations: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, saved)
}

// restoreSavedHandler loads a configuration from the save log
func (s *Server) restoreSavedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, errors.New("invalid saved config ID"), http.StatusBadRequest)
		return
	}
	data, err := s.storage.GetSaved(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		renderError(w, r, fmt.Errorf("saved config %d not found", id), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[ERROR] failed to get saved configuration %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.load(w, r, data)
}

// exportHandler sends current settings as a downloadable JSON file
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	data, err := json.MarshalIndent(s.store.Serialize(), "", s.config.GetStoreConfig().ExportIndent)
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("[WARN] failed to write export: %v", err)
	}
}

// importHandler loads a settings record from the request body
func (s *Server) importHandler(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		renderError(w, r, fmt.Errorf("read body: %w", err), http.StatusBadRequest)
		return
	}
	s.load(w, r, data)
}

// load deserializes a record into the store, bad records leave settings untouched
func (s *Server) load(w http.ResponseWriter, r *http.Request, data []byte) {
	if _, err := s.store.Deserialize(bytes.TrimSpace(data)); err != nil {
		if store.IsParseError(err) {
			renderJSON(w, r, http.StatusBadRequest, rest.JSON{
				"error":  err.Error(),
				"notice": notice{Text: "Failed to load configuration", Kind: noticeError},
			})
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, s.state(&notice{Text: "Configuration loaded", Kind: noticeSuccess}))
}

// contentHandler returns preview content for a writing style
func (s *Server) contentHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.store.ContentFor(r.PathValue("style")))
}

func (s *Server) apply() notice {
	return notice{Text: "Overlay applied successfully!", Kind: noticeSuccess}
}

func (s *Server) reset() notice {
	s.store.Reset()
	return notice{Text: "Overlay reset to defaults", Kind: noticeInfo}
}

func (s *Server) undo() (notice, error) {
	if _, ok := s.store.Undo(); !ok {
		return notice{}, errNothingToUndo
	}
	return notice{Text: "Change undone", Kind: noticeInfo}, nil
}

func (s *Server) redo() (notice, error) {
	if _, ok := s.store.Redo(); !ok {
		return notice{}, errNothingToRedo
	}
	return notice{Text: "Change redone", Kind: noticeInfo}, nil
}

func (s *Server) save(r *http.Request) (notice, error) {
	if err := s.storage.SaveRecord(r.Context(), s.store.Serialize()); err != nil {
		return notice{}, fmt.Errorf("save configuration: %w", err)
	}
	return notice{Text: "Configuration saved!", Kind: noticeSuccess}, nil
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, r *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON for %s: %v", r.URL.Path, err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, rest.JSON{"error": errMsg})
}
