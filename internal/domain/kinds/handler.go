package kinds

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/kinds", func(kr chi.Router) {
		kr.Get("/", listKindsHandler(svc))
		kr.Post("/", createKindHandler(svc))

		kr.Get("/{kindID}", getKindHandler(svc))
		kr.Patch("/{kindID}", updateKindHandler(svc))
		kr.Delete("/{kindID}", deleteKindHandler(svc))
	})
}

type createKindRequest struct {
	Name  string `json:"name"`
	Food  string `json:"food"`
	Sound string `json:"sound"`
}

type updateKindRequest struct {
	Name  *string `json:"name"`
	Food  *string `json:"food"`
	Sound *string `json:"sound"`
}

type kindResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Food  string `json:"food"`
	Sound string `json:"sound"`
}

// listKindsHandler godoc
// @Summary  List kinds
// @Tags     kinds
// @Produce  json
// @Success  200 {array} kindResponse
// @Router   /kinds [get]
func listKindsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]kindResponse, 0, len(items))
		for _, k := range items {
			out = append(out, toKindResponse(k))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createKindHandler godoc
// @Summary  Create kind
// @Tags     kinds
// @Accept   json
// @Produce  json
// @Param    body body createKindRequest true "kind"
// @Success  201 {object} kindResponse
// @Failure  400 {string} string
// @Router   /kinds [post]
func createKindHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createKindRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		k, err := svc.Create(r.Context(), CreateInput{
			Name:  req.Name,
			Food:  req.Food,
			Sound: req.Sound,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toKindResponse(k))
	}
}

// getKindHandler godoc
// @Summary  Get kind
// @Tags     kinds
// @Produce  json
// @Param    kindID path string true "kind id"
// @Success  200 {object} kindResponse
// @Failure  404 {string} string
// @Router   /kinds/{kindID} [get]
func getKindHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k, err := svc.Get(r.Context(), chi.URLParam(r, "kindID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toKindResponse(k))
	}
}

// updateKindHandler godoc
// @Summary  Update kind (campos omitidos no se tocan)
// @Tags     kinds
// @Accept   json
// @Produce  json
// @Param    kindID path string true "kind id"
// @Param    body body updateKindRequest true "patch"
// @Success  200 {object} kindResponse
// @Failure  400 {string} string
// @Failure  404 {string} string
// @Router   /kinds/{kindID} [patch]
func updateKindHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateKindRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		k, err := svc.Update(r.Context(), chi.URLParam(r, "kindID"), UpdateInput{
			Name:  req.Name,
			Food:  req.Food,
			Sound: req.Sound,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toKindResponse(k))
	}
}

// deleteKindHandler godoc
// @Summary  Delete kind (409 si hay mascotas que lo usan)
// @Tags     kinds
// @Param    kindID path string true "kind id"
// @Success  204
// @Failure  404 {string} string
// @Failure  409 {string} string
// @Router   /kinds/{kindID} [delete]
func deleteKindHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "kindID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// StatusFor traduce errores del dominio a HTTP. Lo usa también el front HTML.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInUse):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		http.Error(w, "internal error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func toKindResponse(k Kind) kindResponse {
	return kindResponse{
		ID:    k.ID,
		Name:  k.Name,
		Food:  k.Food,
		Sound: k.Sound,
	}
}

// writeJSON está duplicado en kinds y pets, igual que en el resto de módulos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
