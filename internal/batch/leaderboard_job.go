package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lunchly/internal/domain/customer"
	"lunchly/internal/infrastructure/monitoring"
)

// LeaderboardPublisher receives each refreshed ranking.
type LeaderboardPublisher func(ranked []monitoring.RankedCustomer, at time.Time)

type LeaderboardJob struct {
	customerService customer.CustomerService
	publish         LeaderboardPublisher
	now             func() time.Time
	logger          *slog.Logger
}

func NewLeaderboardJob(customerSvc customer.CustomerService, logger *slog.Logger) *LeaderboardJob {
	if customerSvc == nil || logger == nil {
		panic("LeaderboardJob dependencies cannot be nil")
	}
	return &LeaderboardJob{
		customerService: customerSvc,
		publish:         monitoring.SetLeaderboard,
		now:             time.Now,
		logger:          logger.With("job", "Leaderboard"),
	}
}

// Run refreshes the published top-customers ranking. A failed refresh leaves
// the previous ranking in place.
func (j *LeaderboardJob) Run(ctx context.Context) error {
	startTime := j.now()
	j.logger.InfoContext(ctx, "Starting top customers leaderboard refresh.")

	top, err := j.customerService.TopCustomers(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to rank customers, keeping previous leaderboard.", slog.Any("error", err))
		return fmt.Errorf("cannot refresh leaderboard: %w", err)
	}

	ranked := make([]monitoring.RankedCustomer, 0, len(top))
	for _, c := range top {
		ranked = append(ranked, monitoring.RankedCustomer{
			CustomerID:      c.ID,
			NumReservations: c.NumReservations,
		})
	}
	j.publish(ranked, startTime)

	summary := j.logger.With(
		slog.Int("ranked_customers", len(ranked)),
		slog.Duration("duration", time.Since(startTime)),
	)
	if len(top) > 0 {
		summary = summary.With(
			slog.Int64("top_customer_id", top[0].ID),
			slog.String("top_customer", top[0].FullName()),
			slog.Int64("top_customer_reservations", top[0].NumReservations),
		)
	}
	summary.InfoContext(ctx, "Top customers leaderboard refresh finished.")
	return nil
}
