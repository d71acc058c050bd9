package handler

import (
	"io"
	"net/http"

	"vendorhub/internal/assets"
	"vendorhub/internal/service"
)

func GetProfileHandler(profileSvc ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		v, err := profileSvc.Get(r.Context(), vendorID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func UpdateProfileHandler(profileSvc ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		var in service.ProfileInput
		if !decodeJSON(w, r, &in) {
			return
		}

		v, err := profileSvc.Update(r.Context(), vendorID, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

type logoResponse struct {
	LogoURL string `json:"logo_url"`
}

func UploadLogoHandler(profileSvc ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, ok := vendorFrom(w, r)
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, assets.MaxSize+maxBodySize)
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, assets.MaxSize+1))
		if err != nil {
			http.Error(w, "invalid upload", http.StatusBadRequest)
			return
		}
		if len(data) > assets.MaxSize {
			http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
			return
		}

		url, err := profileSvc.UploadLogo(r.Context(), vendorID, header.Filename, data)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, logoResponse{LogoURL: url})
	}
}
