package http

import (
	"context"

	"mediapulse/internal/mediaintel"
	"mediapulse/internal/services"
	"mediapulse/internal/session"
)

// DashboardServiceInterface is the service contract the dashboard
// handler depends on. Kept as an interface so handler tests can inject
// a stub.
type DashboardServiceInterface interface {
	Upload(ctx context.Context, filename string, data []byte) (*session.Dataset, error)
	Charts(ctx context.Context, criteria mediaintel.Criteria) (*services.ChartData, error)
	FilteredRecords(ctx context.Context, criteria mediaintel.Criteria) ([]mediaintel.Record, error)
	FilterOptions(ctx context.Context) (*services.FilterOptions, error)
	Insights(ctx context.Context) (*services.Insight, error)
	Reset(ctx context.Context) error
}
