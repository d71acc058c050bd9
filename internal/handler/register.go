package handler

import "net/http"

type registerRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	RestaurantName string `json:"restaurant_name"`
}

type authResponse struct {
	UserID   string `json:"user_id"`
	VendorID string `json:"vendor_id"`
	Email    string `json:"email"`
}

func RegisterHandler(authSvc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		user, vendor, err := authSvc.Register(r.Context(), req.Email, req.Password, req.RestaurantName)
		if err != nil {
			writeError(w, r, err)
			return
		}

		tokenString, err := authSvc.IssueToken(user.ID, vendor.ID)
		if err != nil {
			http.Error(w, "token generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Authorization", "Bearer "+tokenString)
		writeJSON(w, http.StatusOK, authResponse{UserID: user.ID, VendorID: vendor.ID, Email: user.Email})
	}
}
