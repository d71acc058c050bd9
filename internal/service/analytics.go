package service

import (
	"context"
	"time"

	"vendorhub/internal/analytics"
)

type AnalyticsService struct {
	orders OrderStore
	menu   MenuStore
	now    func() time.Time
}

func NewAnalyticsService(orders OrderStore, menu MenuStore) *AnalyticsService {
	return &AnalyticsService{orders: orders, menu: menu, now: time.Now}
}

// Report summarizes the current period of tf against the previous one.
func (s *AnalyticsService) Report(ctx context.Context, vendorID string, tf analytics.Timeframe) (*analytics.Summary, error) {
	now := s.now()
	since := analytics.PeriodFor(now, tf).Previous().Start

	orders, err := s.orders.ListSince(ctx, vendorID, since)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	summary := analytics.Summarize(orders, now, tf)
	return &summary, nil
}

func (s *AnalyticsService) Dashboard(ctx context.Context, vendorID string) (*analytics.Dashboard, error) {
	now := s.now()
	since := analytics.PeriodFor(now, analytics.Week).Previous().Start

	orders, err := s.orders.ListSince(ctx, vendorID, since)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	active, err := s.menu.CountAvailable(ctx, vendorID)
	if err != nil {
		return nil, storeErr("count menu items", err)
	}

	d := analytics.BuildDashboard(orders, active, now)
	return &d, nil
}
