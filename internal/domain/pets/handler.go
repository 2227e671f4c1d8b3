package pets

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Owner  string `json:"owner"`
	KindID string `json:"kind_id"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name   *string `json:"name"`
	Age    *int    `json:"age"`
	Owner  *string `json:"owner"`
	KindID *string `json:"kind_id"`
}

type petResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Owner  string `json:"owner"`
	KindID string `json:"kind_id"`
}

type petViewResponse struct {
	petResponse

	KindName string `json:"kind_name"`
	Food     string `json:"food"`
	Sound    string `json:"sound"`
}

// listPetsHandler godoc
// @Summary  List pets joined with their kind
// @Tags     pets
// @Produce  json
// @Success  200 {array} petViewResponse
// @Router   /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petViewResponse, 0, len(items))
		for _, v := range items {
			out = append(out, petViewResponse{
				petResponse: toPetResponse(v.Pet),
				KindName:    v.KindName,
				Food:        v.Food,
				Sound:       v.Sound,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createPetHandler godoc
// @Summary  Create pet
// @Tags     pets
// @Accept   json
// @Produce  json
// @Param    body body createPetRequest true "pet"
// @Success  201 {object} petResponse
// @Failure  400 {string} string
// @Failure  422 {string} string "kind_id no existe"
// @Router   /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:   req.Name,
			Age:    req.Age,
			Owner:  req.Owner,
			KindID: req.KindID,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// getPetHandler godoc
// @Summary  Get pet
// @Tags     pets
// @Produce  json
// @Param    petID path string true "pet id"
// @Success  200 {object} petResponse
// @Failure  404 {string} string
// @Router   /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary  Update pet (campos omitidos no se tocan)
// @Tags     pets
// @Accept   json
// @Produce  json
// @Param    petID path string true "pet id"
// @Param    body body updatePetRequest true "patch"
// @Success  200 {object} petResponse
// @Failure  400 {string} string
// @Failure  404 {string} string
// @Failure  422 {string} string
// @Router   /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), UpdateInput{
			Name:   req.Name,
			Age:    req.Age,
			Owner:  req.Owner,
			KindID: req.KindID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// deletePetHandler godoc
// @Summary  Delete pet
// @Tags     pets
// @Param    petID path string true "pet id"
// @Success  204
// @Failure  404 {string} string
// @Router   /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// StatusFor traduce errores del dominio a HTTP.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnknownKind):
		return http.StatusUnprocessableEntity
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

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:     p.ID,
		Name:   p.Name,
		Age:    p.Age,
		Owner:  p.Owner,
		KindID: p.KindID,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (pets/kinds)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
