package handler

import (
	"net/http"

	"vendorhub/internal/service"
)

func GetSettingsHandler(settingsSvc SettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		st, err := settingsSvc.GetSettings(r.Context(), vendorID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func UpdateSettingsHandler(settingsSvc SettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		var patch service.SettingsPatch
		if !decodeJSON(w, r, &patch) {
			return
		}

		st, err := settingsSvc.UpdateSettings(r.Context(), vendorID, patch)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func GetBankAccountHandler(settingsSvc SettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		b, err := settingsSvc.GetBankAccount(r.Context(), vendorID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func UpdateBankAccountHandler(settingsSvc SettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		var in service.BankAccountInput
		if !decodeJSON(w, r, &in) {
			return
		}

		b, err := settingsSvc.UpdateBankAccount(r.Context(), vendorID, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}
