package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pets-catalog/internal/domain/pets"
)

func (h *Handler) listPets(w http.ResponseWriter, r *http.Request) {
	items, err := h.pets.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "list.html", map[string]any{"Pets": items})
}

func (h *Handler) createPetForm(w http.ResponseWriter, r *http.Request) {
	ks, err := h.kinds.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "create.html", map[string]any{"Kinds": ks})
}

func (h *Handler) createPet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, pets.ErrInvalidInput)
		return
	}

	_, err := h.pets.Create(r.Context(), pets.CreateInput{
		Name:   r.PostForm.Get("name"),
		Age:    pets.ParseAge(r.PostForm.Get("age")),
		Owner:  r.PostForm.Get("owner"),
		KindID: r.PostForm.Get("kind_id"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	redirect(w, r, "/list")
}

func (h *Handler) updatePetForm(w http.ResponseWriter, r *http.Request) {
	p, err := h.pets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ks, err := h.kinds.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "update.html", map[string]any{"Pet": p, "Kinds": ks})
}

// updatePet: el form manda siempre todos los campos.
func (h *Handler) updatePet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, pets.ErrInvalidInput)
		return
	}

	name := r.PostForm.Get("name")
	age := pets.ParseAge(r.PostForm.Get("age"))
	owner := r.PostForm.Get("owner")
	kindID := r.PostForm.Get("kind_id")

	_, err := h.pets.Update(r.Context(), chi.URLParam(r, "id"), pets.UpdateInput{
		Name:   &name,
		Age:    &age,
		Owner:  &owner,
		KindID: &kindID,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	redirect(w, r, "/list")
}

func (h *Handler) deletePet(w http.ResponseWriter, r *http.Request) {
	if err := h.pets.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	redirect(w, r, "/list")
}
