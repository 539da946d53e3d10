package paymentdetails

import (
	"context"
	"errors"
	"fmt"

	"github.com/alovak/payment-details/paymentdetails/models"
	"golang.org/x/exp/slog"
)

// ErrIDMismatch is returned when an update body names a different record than the path.
var ErrIDMismatch = errors.New("payment detail id mismatch")

type Service struct {
	repo   *Repository
	logger *slog.Logger
}

func NewService(repo *Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListPaymentDetails(ctx context.Context) ([]models.PaymentDetail, error) {
	details, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing payment details: %w", err)
	}

	return details, nil
}

func (s *Service) GetPaymentDetail(ctx context.Context, id int64) (*models.PaymentDetail, error) {
	detail, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding payment detail %d: %w", id, err)
	}

	return detail, nil
}

func (s *Service) CreatePaymentDetail(ctx context.Context, in models.PaymentDetailInput) (*models.PaymentDetail, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	detail, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("creating payment detail: %w", err)
	}

	s.logger.Info("payment detail created", slog.Int64("payment_detail_id", detail.ID))

	return detail, nil
}

// UpdatePaymentDetail replaces the record at id. A zero id in the body is
// taken from the path.
func (s *Service) UpdatePaymentDetail(ctx context.Context, id int64, detail models.PaymentDetail) error {
	if detail.ID == 0 {
		detail.ID = id
	}
	if detail.ID != id {
		return fmt.Errorf("path %d, body %d: %w", id, detail.ID, ErrIDMismatch)
	}
	if err := detail.Input().Validate(); err != nil {
		return err
	}

	// The security code goes back to the store as entered, unencrypted.
	if err := s.repo.Update(ctx, id, detail); err != nil {
		return fmt.Errorf("updating payment detail %d: %w", id, err)
	}

	s.logger.Info("payment detail updated", slog.Int64("payment_detail_id", id))

	return nil
}

func (s *Service) DeletePaymentDetail(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting payment detail %d: %w", id, err)
	}

	s.logger.Info("payment detail deleted", slog.Int64("payment_detail_id", id))

	return nil
}
