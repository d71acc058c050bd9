package handler

import (
	"net/http"

	"vendorhub/internal/analytics"
)

func AnalyticsHandler(analyticsSvc AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		tf, err := analytics.ParseTimeframe(r.URL.Query().Get("timeframe"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		summary, err := analyticsSvc.Report(r.Context(), vendorID, tf)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func DashboardHandler(analyticsSvc AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		d, err := analyticsSvc.Dashboard(r.Context(), vendorID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}
