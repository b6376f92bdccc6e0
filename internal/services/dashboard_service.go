package services

import (
	"time"

	"fintrack/internal/metrics"
)

// dashboardService builds dashboard metrics from a user's transactions.
type dashboardService struct {
	transactions TransactionServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(transactions TransactionServicer) DashboardServicer {
	return &dashboardService{transactions: transactions}
}

// GetDashboardMetrics loads the user's full transaction history and
// aggregates it relative to now.
func (s *dashboardService) GetDashboardMetrics(userID string, now time.Time) (*metrics.Summary, error) {
	records, err := s.transactions.GetAllUserTransactions(userID)
	if err != nil {
		return nil, err
	}
	summary := metrics.Aggregate(records, now)
	return &summary, nil
}
