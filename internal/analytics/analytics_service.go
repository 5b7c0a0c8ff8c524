package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RecentLeavesLimit caps the recent-activity feed on the dashboard.
const RecentLeavesLimit = 10

type Service interface {
	Dashboard(ctx context.Context, year int) (DashboardResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{repo: repo, logger: l.Named("analytics_service")}
}

func (s *service) Dashboard(ctx context.Context, year int) (DashboardResponse, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		s.logger.Error("failed to list employees", zap.Error(err))
		return DashboardResponse{}, err
	}

	leaves, err := s.repo.ListApprovedLeaves(ctx, year)
	if err != nil {
		s.logger.Error("failed to list approved leaves", zap.Int("year", year), zap.Error(err))
		return DashboardResponse{}, err
	}

	recent, err := s.repo.ListRecentLeaves(ctx, year, RecentLeavesLimit)
	if err != nil {
		s.logger.Error("failed to list recent leaves", zap.Int("year", year), zap.Error(err))
		return DashboardResponse{}, err
	}

	return BuildDashboard(year, employees, leaves, recent), nil
}
