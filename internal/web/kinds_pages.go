package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pets-catalog/internal/domain/kinds"
)

func (h *Handler) listKinds(w http.ResponseWriter, r *http.Request) {
	ks, err := h.kinds.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "kind_list.html", map[string]any{"Kinds": ks})
}

func (h *Handler) createKindForm(w http.ResponseWriter, _ *http.Request) {
	h.render(w, http.StatusOK, "kind_create.html", nil)
}

func (h *Handler) createKind(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, kinds.ErrInvalidInput)
		return
	}

	_, err := h.kinds.Create(r.Context(), kinds.CreateInput{
		Name:  r.PostForm.Get("name"),
		Food:  r.PostForm.Get("food"),
		Sound: r.PostForm.Get("sound"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	redirect(w, r, "/kind/list")
}

func (h *Handler) updateKindForm(w http.ResponseWriter, r *http.Request) {
	k, err := h.kinds.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "kind_update.html", map[string]any{"Kind": k})
}

func (h *Handler) updateKind(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, kinds.ErrInvalidInput)
		return
	}

	name := r.PostForm.Get("name")
	food := r.PostForm.Get("food")
	sound := r.PostForm.Get("sound")

	_, err := h.kinds.Update(r.Context(), chi.URLParam(r, "id"), kinds.UpdateInput{
		Name:  &name,
		Food:  &food,
		Sound: &sound,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	redirect(w, r, "/kind/list")
}

// deleteKind: si quedan mascotas de ese kind se muestra error.html (409).
func (h *Handler) deleteKind(w http.ResponseWriter, r *http.Request) {
	if err := h.kinds.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	redirect(w, r, "/kind/list")
}
