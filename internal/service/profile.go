package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"vendorhub/internal/model"
)

type ProfileInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
	CuisineType string `json:"cuisine_type"`
}

func (in ProfileInput) validate() error {
	var v validator
	v.minLen("name", in.Name, 2, "Restaurant name must be at least 2 characters.")
	v.minLen("phone_number", in.PhoneNumber, 9, "Please enter a valid phone number.")
	v.email("email", in.Email)
	v.minLen("address", in.Address, 5, "Address must be at least 5 characters.")
	v.clock("opening_time", in.OpeningTime)
	v.clock("closing_time", in.ClosingTime)
	return v.err()
}

var logoTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
}

type ProfileService struct {
	vendors       VendorStore
	assets        AssetStore
	publicBaseURL string
	now           func() time.Time
}

func NewProfileService(vendors VendorStore, assets AssetStore, publicBaseURL string) *ProfileService {
	return &ProfileService{
		vendors:       vendors,
		assets:        assets,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}
}

func (s *ProfileService) Get(ctx context.Context, vendorID string) (*model.Vendor, error) {
	v, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, storeErr("get vendor", err)
	}
	return v, nil
}

func (s *ProfileService) Update(ctx context.Context, vendorID string, in ProfileInput) (*model.Vendor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	v, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, storeErr("get vendor", err)
	}

	v.Name = strings.TrimSpace(in.Name)
	v.Description = in.Description
	v.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	v.Email = in.Email
	v.Address = strings.TrimSpace(in.Address)
	v.OpeningTime = in.OpeningTime
	v.ClosingTime = in.ClosingTime
	v.CuisineType = in.CuisineType

	if err := s.vendors.Update(ctx, v); err != nil {
		return nil, storeErr("update vendor", err)
	}
	return v, nil
}

// LogoPath is where a vendor's logo uploaded at t is stored.
func LogoPath(vendorID string, t time.Time, ext string) string {
	return fmt.Sprintf("vendor-logos/%s-logo-%d.%s", vendorID, t.Unix(), ext)
}

// UploadLogo stores the image and points the profile at its public URL,
// which is returned.
func (s *ProfileService) UploadLogo(ctx context.Context, vendorID, filename string, data []byte) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	contentType, ok := logoTypes[ext]

	var v validator
	if !ok {
		v.fail("file", "Logo must be a PNG, JPEG, GIF or WebP image.")
	}
	if len(data) == 0 {
		v.fail("file", "Logo file is empty.")
	}
	if err := v.err(); err != nil {
		return "", err
	}

	path := LogoPath(vendorID, s.now(), ext)
	if err := s.assets.Put(path, contentType, data); err != nil {
		return "", fmt.Errorf("store logo: %w", err)
	}

	url := s.publicBaseURL + "/assets/" + path
	if err := s.vendors.UpdateLogo(ctx, vendorID, url); err != nil {
		return "", storeErr("update logo", err)
	}
	return url, nil
}
