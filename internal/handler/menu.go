package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendorhub/internal/service"
)

func ListMenuHandler(menuSvc MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		q := r.URL.Query()
		items, err := menuSvc.List(r.Context(), vendorID, q.Get("q"), q.Get("category"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func GetMenuItemHandler(menuSvc MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		item, err := menuSvc.Get(r.Context(), vendorID, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func CreateMenuItemHandler(menuSvc MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		var in service.MenuInput
		if !decodeJSON(w, r, &in) {
			return
		}

		item, err := menuSvc.Create(r.Context(), vendorID, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	}
}

func UpdateMenuItemHandler(menuSvc MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		var in service.MenuInput
		if !decodeJSON(w, r, &in) {
			return
		}

		item, err := menuSvc.Update(r.Context(), vendorID, chi.URLParam(r, "id"), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

type availabilityRequest struct {
	Available *bool `json:"available"`
}

func SetAvailabilityHandler(menuSvc MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		var req availabilityRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Available == nil {
			http.Error(w, "available required", http.StatusBadRequest)
			return
		}

		if err := menuSvc.SetAvailability(r.Context(), vendorID, chi.URLParam(r, "id"), *req.Available); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteMenuItemHandler(menuSvc MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		if err := menuSvc.Delete(r.Context(), vendorID, chi.URLParam(r, "id")); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func CategoriesHandler(menuSvc MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, menuSvc.Categories())
	}
}
