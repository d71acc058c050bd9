package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendorhub/internal/model"
	"vendorhub/internal/mw"
	"vendorhub/internal/workflow"
)

func ListOrdersHandler(orderSvc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		filter, err := workflow.ParseFilter(r.URL.Query().Get("status"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		list, err := orderSvc.List(r.Context(), vendorID, filter, r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func GetOrderHandler(orderSvc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		detail, err := orderSvc.Get(r.Context(), vendorID, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

func UpdateOrderStatusHandler(orderSvc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		var req statusRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		target, err := model.ParseStatus(req.Status)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		actor, _ := mw.UserID(r.Context())
		detail, err := orderSvc.Transition(r.Context(), vendorID, chi.URLParam(r, "id"), target, actor)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}
