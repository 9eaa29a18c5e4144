package thresholds

import (
	"context"
	"errors"
	"fmt"
	"sync"

	repo "github.com/diwise/iot-climate-control/internal/pkg/infrastructure/repositories/database/thresholds"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

//go:generate moq -rm -out store_mock.go . Store

type Store interface {
	Get(ctx context.Context, warehouseID string) (Threshold, error)
	Set(ctx context.Context, warehouseID string, t Threshold) error
}

type store struct {
	repo repo.ThresholdRepository

	mu    sync.RWMutex
	cache map[string]Threshold
	// generation is bumped by every write, a read started before a write must not fill the cache
	generation uint64
}

func NewStore(r repo.ThresholdRepository) Store {
	return &store{
		repo:  r,
		cache: map[string]Threshold{},
	}
}

// Get returns the threshold of a warehouse, or an all disabled threshold if none has been set.
func (s *store) Get(ctx context.Context, warehouseID string) (Threshold, error) {
	s.mu.RLock()
	t, ok := s.cache[warehouseID]
	generation := s.generation
	s.mu.RUnlock()

	if ok {
		return t, nil
	}

	stored, err := s.repo.Get(ctx, warehouseID)
	if err != nil {
		if errors.Is(err, repo.ErrThresholdNotFound) {
			return AllDisabled(), nil
		}
		return Threshold{}, fmt.Errorf("failed to load threshold for warehouse %s: %w", warehouseID, err)
	}

	t, err = FromWire(toWire(stored))
	if err != nil {
		log := logging.GetFromContext(ctx)
		log.Warn().Err(err).Str("warehouseID", warehouseID).Msg("stored threshold is invalid, treating it as disabled")
		return AllDisabled(), nil
	}

	s.mu.Lock()
	if s.generation == generation {
		s.cache[warehouseID] = t
	}
	s.mu.Unlock()

	return t, nil
}

// Set validates and stores a threshold. The last write for a warehouse wins.
func (s *store) Set(ctx context.Context, warehouseID string, t Threshold) error {
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++

	if err := s.repo.Save(ctx, fromWire(warehouseID, ToWire(t))); err != nil {
		delete(s.cache, warehouseID)
		return fmt.Errorf("failed to store threshold for warehouse %s: %w", warehouseID, err)
	}

	s.cache[warehouseID] = t

	return nil
}
