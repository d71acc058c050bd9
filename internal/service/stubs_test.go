package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"vendorhub/internal/model"
	"vendorhub/internal/notify"
	"vendorhub/internal/repository"
)

type stubUsers struct {
	users   map[string]*model.User
	vendors *stubVendors
	err     error
}

func newStubUsers(vendors *stubVendors) *stubUsers {
	return &stubUsers{users: make(map[string]*model.User), vendors: vendors}
}

func (r *stubUsers) CreateWithVendor(_ context.Context, u *model.User, v *model.Vendor) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[u.Email]; ok {
		return repository.ErrDuplicate
	}
	u.ID = "user-" + u.Email
	v.ID = "vendor-" + u.Email
	v.UserID = u.ID
	r.users[u.Email] = u
	cp := *v
	r.vendors.vendors[v.ID] = &cp
	return nil
}

func (r *stubUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

type stubVendors struct {
	vendors map[string]*model.Vendor
}

func newStubVendors(vs ...model.Vendor) *stubVendors {
	r := &stubVendors{vendors: make(map[string]*model.Vendor)}
	for i := range vs {
		v := vs[i]
		r.vendors[v.ID] = &v
	}
	return r
}

func (r *stubVendors) GetByID(_ context.Context, id string) (*model.Vendor, error) {
	if v, ok := r.vendors[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *stubVendors) GetByUserID(_ context.Context, userID string) (*model.Vendor, error) {
	for _, v := range r.vendors {
		if v.UserID == userID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubVendors) Update(_ context.Context, v *model.Vendor) error {
	if _, ok := r.vendors[v.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *v
	r.vendors[v.ID] = &cp
	return nil
}

func (r *stubVendors) UpdateLogo(_ context.Context, vendorID, logoURL string) error {
	v, ok := r.vendors[vendorID]
	if !ok {
		return repository.ErrNotFound
	}
	v.LogoURL = logoURL
	return nil
}

type stubOrders struct {
	mu        sync.Mutex
	orders    map[string]model.Order
	updateErr error
	updates   []string
	since     time.Time
}

func newStubOrders(orders ...model.Order) *stubOrders {
	r := &stubOrders{orders: make(map[string]model.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *stubOrders) sorted(keep func(model.Order) bool) []model.Order {
	var out []model.Order
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *stubOrders) ListByVendor(_ context.Context, vendorID string) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(o model.Order) bool { return o.VendorID == vendorID }), nil
}

func (r *stubOrders) ListSince(_ context.Context, vendorID string, since time.Time) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.since = since
	return r.sorted(func(o model.Order) bool { return o.VendorID == vendorID && !o.CreatedAt.Before(since) }), nil
}

func (r *stubOrders) ListByStatus(_ context.Context, vendorID string, status model.Status, limit int) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sorted(func(o model.Order) bool { return o.VendorID == vendorID && o.Status == status })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubOrders) Get(_ context.Context, vendorID, id string) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.VendorID != vendorID {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (r *stubOrders) UpdateStatus(_ context.Context, vendorID, id string, from, to model.Status, changedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	o, ok := r.orders[id]
	if !ok || o.VendorID != vendorID {
		return repository.ErrNotFound
	}
	if o.Status != from {
		return repository.ErrStatusConflict
	}
	o.Status = to
	r.orders[id] = o
	r.updates = append(r.updates, id+":"+string(to)+":"+changedBy)
	return nil
}

func (r *stubOrders) status(id string) model.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[id].Status
}

type stubMenu struct {
	items map[string]*model.MenuItem
	order []string
	// lookups counts calls addressing a single item by id.
	lookups int
}

func newStubMenu(items ...model.MenuItem) *stubMenu {
	r := &stubMenu{items: make(map[string]*model.MenuItem)}
	for i := range items {
		it := items[i]
		r.items[it.ID] = &it
		r.order = append(r.order, it.ID)
	}
	return r
}

func (r *stubMenu) List(_ context.Context, vendorID string) ([]model.MenuItem, error) {
	var out []model.MenuItem
	for _, id := range r.order {
		if it, ok := r.items[id]; ok && it.VendorID == vendorID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *stubMenu) Get(_ context.Context, vendorID, id string) (*model.MenuItem, error) {
	r.lookups++
	it, ok := r.items[id]
	if !ok || it.VendorID != vendorID {
		return nil, repository.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *stubMenu) Create(_ context.Context, m *model.MenuItem) error {
	m.CreatedAt = time.Now()
	cp := *m
	r.items[m.ID] = &cp
	r.order = append(r.order, m.ID)
	return nil
}

func (r *stubMenu) Update(_ context.Context, m *model.MenuItem) error {
	if _, ok := r.items[m.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *m
	r.items[m.ID] = &cp
	return nil
}

func (r *stubMenu) SetAvailability(_ context.Context, vendorID, id string, available bool) error {
	r.lookups++
	it, ok := r.items[id]
	if !ok || it.VendorID != vendorID {
		return repository.ErrNotFound
	}
	it.Available = available
	return nil
}

func (r *stubMenu) Delete(_ context.Context, vendorID, id string) error {
	r.lookups++
	it, ok := r.items[id]
	if !ok || it.VendorID != vendorID {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubMenu) CountAvailable(_ context.Context, vendorID string) (int, error) {
	n := 0
	for _, it := range r.items {
		if it.VendorID == vendorID && it.Available {
			n++
		}
	}
	return n, nil
}

type stubSettings struct {
	settings map[string]*model.RestaurantSettings
	banks    map[string]*model.BankAccount
	creates  int
}

func newStubSettings() *stubSettings {
	return &stubSettings{
		settings: make(map[string]*model.RestaurantSettings),
		banks:    make(map[string]*model.BankAccount),
	}
}

func (r *stubSettings) GetSettings(_ context.Context, vendorID string) (*model.RestaurantSettings, error) {
	if s, ok := r.settings[vendorID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *stubSettings) CreateSettings(ctx context.Context, s model.RestaurantSettings) (*model.RestaurantSettings, error) {
	r.creates++
	if _, ok := r.settings[s.VendorID]; !ok {
		s.ID = "settings-" + s.VendorID
		r.settings[s.VendorID] = &s
	}
	return r.GetSettings(ctx, s.VendorID)
}

func (r *stubSettings) UpdateSettings(_ context.Context, s *model.RestaurantSettings) error {
	if _, ok := r.settings[s.VendorID]; !ok {
		return repository.ErrNotFound
	}
	cp := *s
	r.settings[s.VendorID] = &cp
	return nil
}

func (r *stubSettings) ListAutoAcceptVendors(_ context.Context) ([]string, error) {
	var ids []string
	for id, s := range r.settings {
		if s.AutoAcceptOrders && s.RestaurantOpen {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *stubSettings) GetBankAccount(_ context.Context, vendorID string) (*model.BankAccount, error) {
	if b, ok := r.banks[vendorID]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *stubSettings) CreateBankAccount(ctx context.Context, b model.BankAccount) (*model.BankAccount, error) {
	r.creates++
	if _, ok := r.banks[b.VendorID]; !ok {
		b.ID = "bank-" + b.VendorID
		r.banks[b.VendorID] = &b
	}
	return r.GetBankAccount(ctx, b.VendorID)
}

func (r *stubSettings) UpdateBankAccount(_ context.Context, b *model.BankAccount) error {
	if _, ok := r.banks[b.VendorID]; !ok {
		return repository.ErrNotFound
	}
	cp := *b
	r.banks[b.VendorID] = &cp
	return nil
}

type stubAssets struct {
	files map[string][]byte
	types map[string]string
}

func newStubAssets() *stubAssets {
	return &stubAssets{files: make(map[string][]byte), types: make(map[string]string)}
}

func (a *stubAssets) Put(path, contentType string, data []byte) error {
	a.files[path] = data
	a.types[path] = contentType
	return nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, e notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return n.err
}
