package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vendorhub/internal/model"
)

type MenuInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	CategoryID  string          `json:"category_id"`
	Available   *bool           `json:"available,omitempty"`
}

func (in MenuInput) validate() error {
	var v validator
	v.minLen("name", in.Name, 2, "Name must be at least 2 characters.")
	if in.Price.IsNegative() {
		v.fail("price", "Price must be a positive number.")
	}
	if model.CategoryName(in.CategoryID) == "" {
		v.fail("category_id", "Please select a category.")
	}
	return v.err()
}

type MenuService struct {
	menu MenuStore
}

func NewMenuService(menu MenuStore) *MenuService {
	return &MenuService{menu: menu}
}

// List returns the vendor's items whose name or description contains query
// (case-insensitive) and, unless categoryID is empty, that belong to it.
func (s *MenuService) List(ctx context.Context, vendorID, query, categoryID string) ([]model.MenuItem, error) {
	items, err := s.menu.List(ctx, vendorID)
	if err != nil {
		return nil, storeErr("list menu", err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.MenuItem, 0, len(items))
	for _, it := range items {
		if categoryID != "" && it.CategoryID != categoryID {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(it.Name), q) &&
			!strings.Contains(strings.ToLower(it.Description), q) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// itemID rejects ids that cannot name a stored item, so they never reach
// the UUID column.
func itemID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *MenuService) Get(ctx context.Context, vendorID, id string) (*model.MenuItem, error) {
	if err := itemID(id); err != nil {
		return nil, err
	}
	it, err := s.menu.Get(ctx, vendorID, id)
	if err != nil {
		return nil, storeErr("get menu item", err)
	}
	return it, nil
}

func (s *MenuService) Create(ctx context.Context, vendorID string, in MenuInput) (*model.MenuItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	item := &model.MenuItem{
		ID:          uuid.NewString(),
		VendorID:    vendorID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price.Round(2),
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		Category:    model.CategoryName(in.CategoryID),
		Available:   in.Available == nil || *in.Available,
	}
	if err := s.menu.Create(ctx, item); err != nil {
		return nil, storeErr("create menu item", err)
	}
	return item, nil
}

// Update replaces the editable fields of an item. Availability is only
// changed when in.Available is set.
func (s *MenuService) Update(ctx context.Context, vendorID, id string, in MenuInput) (*model.MenuItem, error) {
	if err := itemID(id); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	item, err := s.menu.Get(ctx, vendorID, id)
	if err != nil {
		return nil, storeErr("get menu item", err)
	}

	item.Name = strings.TrimSpace(in.Name)
	item.Description = in.Description
	item.Price = in.Price.Round(2)
	item.ImageURL = in.ImageURL
	item.CategoryID = in.CategoryID
	item.Category = model.CategoryName(in.CategoryID)

	if err := s.menu.Update(ctx, item); err != nil {
		return nil, storeErr("update menu item", err)
	}
	if in.Available != nil && *in.Available != item.Available {
		if err := s.menu.SetAvailability(ctx, vendorID, id, *in.Available); err != nil {
			return nil, storeErr("update availability", err)
		}
		item.Available = *in.Available
	}
	return item, nil
}

func (s *MenuService) SetAvailability(ctx context.Context, vendorID, id string, available bool) error {
	if err := itemID(id); err != nil {
		return err
	}
	if err := s.menu.SetAvailability(ctx, vendorID, id, available); err != nil {
		return storeErr("update availability", err)
	}
	return nil
}

func (s *MenuService) Delete(ctx context.Context, vendorID, id string) error {
	if err := itemID(id); err != nil {
		return err
	}
	if err := s.menu.Delete(ctx, vendorID, id); err != nil {
		return storeErr("delete menu item", err)
	}
	return nil
}

func (s *MenuService) Categories() []model.Category {
	out := make([]model.Category, len(model.Categories))
	copy(out, model.Categories)
	return out
}
