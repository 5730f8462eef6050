package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"lesson-author-service/internal/app"
	"lesson-author-service/internal/codec"
	"lesson-author-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

// maxImportSize bounds uploaded lesson packages.
const maxImportSize = 4 << 20

// LessonHandler exposes the lesson CRUD and import/export surface.
type LessonHandler struct {
	service *app.LessonService
}

func NewLessonHandler(service *app.LessonService) *LessonHandler {
	return &LessonHandler{service: service}
}

// Register mounts the lesson routes.
func (h *LessonHandler) Register(r chi.Router) {
	r.Get("/lessons", h.list)
	r.Post("/lessons", h.create)
	r.Post("/lessons/import", h.importLesson)
	r.Get("/lessons/template", h.template)
	r.Get("/lessons/{lessonID}", h.get)
	r.Put("/lessons/{lessonID}", h.update)
	r.Get("/lessons/{lessonID}/export", h.export)
}

func (h *LessonHandler) list(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.service.ListLessons(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lessons)
}

func (h *LessonHandler) get(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.service.GetLesson(r.Context(), chi.URLParam(r, "lessonID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func (h *LessonHandler) create(w http.ResponseWriter, r *http.Request) {
	var lesson domain.Lesson
	if err := json.NewDecoder(r.Body).Decode(&lesson); err != nil {
		http.Error(w, "invalid lesson body", http.StatusBadRequest)
		return
	}
	if lesson.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	created, err := h.service.CreateLesson(r.Context(), lesson)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *LessonHandler) update(w http.ResponseWriter, r *http.Request) {
	var lesson domain.Lesson
	if err := json.NewDecoder(r.Body).Decode(&lesson); err != nil {
		http.Error(w, "invalid lesson body", http.StatusBadRequest)
		return
	}
	lesson.ID = chi.URLParam(r, "lessonID")
	updated, err := h.service.UpdateLesson(r.Context(), lesson)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *LessonHandler) importLesson(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		http.Error(w, "unreadable body", http.StatusBadRequest)
		return
	}
	lesson, err := h.service.Import(r.Context(), data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lesson)
}

func (h *LessonHandler) export(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Export(r.Context(), chi.URLParam(r, "lessonID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="lesson.json"`)
	_, _ = w.Write(data)
}

func (h *LessonHandler) template(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="lesson_template.json"`)
	_, _ = w.Write(codec.Template())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrLessonNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrMalformedLesson),
		errors.Is(err, domain.ErrInvalidSettings),
		errors.Is(err, domain.ErrUnknownKind):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
