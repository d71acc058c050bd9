package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func ListNotificationsHandler(notificationSvc NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		list, err := notificationSvc.List(r.Context(), vendorID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func MarkNotificationReadHandler(notificationSvc NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		if err := notificationSvc.MarkRead(r.Context(), vendorID, chi.URLParam(r, "id")); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func MarkAllNotificationsReadHandler(notificationSvc NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		if err := notificationSvc.MarkAllRead(r.Context(), vendorID); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
