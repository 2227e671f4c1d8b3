// Package web es el front end HTML: listados y formularios de mascotas y kinds.
// Los POST redirigen (302) al listado, como un form clásico.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pets-catalog/internal/domain/kinds"
	"pets-catalog/internal/domain/pets"
	"pets-catalog/internal/platform/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = []string{
	"list.html",
	"create.html",
	"update.html",
	"kind_list.html",
	"kind_create.html",
	"kind_update.html",
	"error.html",
}

type Handler struct {
	kinds *kinds.Service
	pets  *pets.Service
	log   logger.Logger

	tmpl map[string]*template.Template
}

func New(kindsSvc *kinds.Service, petsSvc *pets.Service, log logger.Logger) (*Handler, error) {
	if log == nil {
		log = logger.Nop()
	}

	tmpl := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		t, err := template.ParseFS(templatesFS, "templates/base.html", "templates/"+p)
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", p, err)
		}
		tmpl[p] = t
	}
	return &Handler{kinds: kindsSvc, pets: petsSvc, log: log, tmpl: tmpl}, nil
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listPets)
	r.Get("/list", h.listPets)
	r.Get("/create", h.createPetForm)
	r.Post("/create", h.createPet)
	r.Get("/update/{id}", h.updatePetForm)
	r.Post("/update/{id}", h.updatePet)
	r.Get("/delete/{id}", h.deletePet)
	r.Post("/delete/{id}", h.deletePet)

	r.Route("/kind", func(kr chi.Router) {
		kr.Get("/", h.listKinds)
		kr.Get("/list", h.listKinds)
		kr.Get("/create", h.createKindForm)
		kr.Post("/create", h.createKind)
		kr.Get("/update/{id}", h.updateKindForm)
		kr.Post("/update/{id}", h.updateKind)
		kr.Get("/delete/{id}", h.deleteKind)
		kr.Post("/delete/{id}", h.deleteKind)
	})
}

// render ejecuta en un buffer para no mandar un 200 a medias si el template falla.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl[page].ExecuteTemplate(&buf, "base", data); err != nil {
		h.log.Error("render failed", map[string]any{"page": page, "err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// fail muestra error.html con el texto del error y el status que le
// corresponde al error de dominio.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", map[string]any{"path": r.URL.Path, "err": err})
	}
	h.render(w, status, "error.html", map[string]any{"Error": err.Error()})
}

func statusFor(err error) int {
	if s := pets.StatusFor(err); s != http.StatusInternalServerError {
		return s
	}
	return kinds.StatusFor(err)
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusFound)
}
