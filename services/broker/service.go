package broker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brokerbook/database"
	brokerRepo "brokerbook/database/repository/broker"
	"brokerbook/models"
	"brokerbook/services/scheduling"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrForbidden = errors.New("brokers can only edit their own profile")
	ErrNotFound  = errors.New("broker not found")
	ErrInvalid   = errors.New("invalid broker profile")
)

type BrokerService interface {
	// Search lists brokers and attaches each one's next open slot.
	Search(ctx context.Context, criteria models.BrokerSearch) ([]models.BrokerSummary, error)
	Get(ctx context.Context, id string) (*models.Broker, error)
	Upsert(ctx context.Context, actingUserID string, b models.Broker) (*models.Broker, error)
}

type DefaultBrokerService struct {
	Repo        brokerRepo.BrokerRepository
	Slots       scheduling.SlotGenerator
	Logger      *zap.Logger
	Concurrency int
}

func NewDefaultBrokerService(repo brokerRepo.BrokerRepository, slots scheduling.SlotGenerator, concurrency int, logger *zap.Logger) (*DefaultBrokerService, error) {
	if repo == nil || slots == nil {
		return nil, fmt.Errorf("broker service initialization error: repo or slot generator is nil")
	}
	if concurrency <= 0 {
		concurrency = 8
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBrokerService{Repo: repo, Slots: slots, Logger: logger, Concurrency: concurrency}, nil
}

func (s *DefaultBrokerService) Search(ctx context.Context, criteria models.BrokerSearch) ([]models.BrokerSummary, error) {
	criteria.City = strings.TrimSpace(criteria.City)
	criteria.Specialty = strings.TrimSpace(criteria.Specialty)

	brokers, err := s.Repo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	out := make([]models.BrokerSummary, len(brokers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for i := range brokers {
		i := i
		out[i].Broker = brokers[i]
		g.Go(func() error {
			next, err := s.Slots.NextAvailable(gctx, brokers[i].ID)
			if err != nil {
				// A broker whose calendar cannot be read still shows up, just without a slot.
				s.Logger.Warn("next available slot lookup failed",
					zap.String("brokerID", brokers[i].ID), zap.Error(err))
				return nil
			}
			out[i].NextAvailable = next
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DefaultBrokerService) Get(ctx context.Context, id string) (*models.Broker, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return b, err
}

// Upsert saves the acting broker's own profile. CreatedAt survives updates.
func (s *DefaultBrokerService) Upsert(ctx context.Context, actingUserID string, b models.Broker) (*models.Broker, error) {
	if actingUserID == "" || (b.ID != "" && b.ID != actingUserID) {
		return nil, ErrForbidden
	}
	b.ID = actingUserID
	b.Name = strings.TrimSpace(b.Name)
	b.City = strings.TrimSpace(b.City)
	if b.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	now := s.Slots.Now().UTC()
	existing, err := s.Repo.GetByID(ctx, b.ID)
	switch {
	case err == nil:
		b.CreatedAt = existing.CreatedAt
	case errors.Is(err, database.ErrNotFound):
		b.CreatedAt = now
	default:
		return nil, err
	}
	b.UpdatedAt = now

	if err := s.Repo.Upsert(ctx, &b); err != nil {
		return nil, err
	}
	s.Logger.Info("broker profile saved", zap.String("brokerID", b.ID))
	return &b, nil
}
