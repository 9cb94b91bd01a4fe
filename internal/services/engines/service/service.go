// Package service implements the engines cache
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"linguabot/internal/core/langpack"
	perr "linguabot/internal/platform/errors"
	"linguabot/internal/platform/logger"
	"linguabot/internal/services/engines/domain"
)

// Config for the engines service
type Config struct {
	// LoadTimeout bounds a single engine load. 0 means no bound.
	LoadTimeout time.Duration
}

// Service implements domain.CachePort
type Service struct {
	pack   *langpack.Pack
	loader domain.LoaderPort
	cfg    Config

	mu       sync.RWMutex
	resident map[langpack.Pair]domain.Engine
	flight   singleflight.Group
}

// New constructs the engines cache
func New(pack *langpack.Pack, loader domain.LoaderPort, cfg Config) *Service {
	if pack == nil {
		panic("engines: nil pack")
	}
	if loader == nil {
		panic("engines: nil loader")
	}
	return &Service{
		pack:     pack,
		loader:   loader,
		cfg:      cfg,
		resident: make(map[langpack.Pair]domain.Engine),
	}
}

// GetOrLoad returns the engine for pair, loading at most once per pair.
// Concurrent callers for the same cold pair coalesce onto one load; a
// failed load is returned to every waiter and never cached, so a later
// call retries.
func (s *Service) GetOrLoad(ctx context.Context, pair langpack.Pair) (domain.Engine, error) {
	modelID, ok := s.pack.ModelID(pair)
	if !ok {
		return nil, perr.UnsupportedPairf("no engine for pair %s", pair.Key())
	}

	s.mu.RLock()
	eng, hit := s.resident[pair]
	s.mu.RUnlock()
	if hit {
		return eng, nil
	}

	// Coalesced waiters ride the winning caller's ctx: if the winner is
	// cancelled mid-load, every waiter gets the cancellation and the
	// flight entry is forgotten, so the next caller starts fresh.
	v, err, shared := s.flight.Do(pair.Key(), func() (any, error) {
		// recheck under the flight; a previous winner may have stored it
		s.mu.RLock()
		eng, hit := s.resident[pair]
		s.mu.RUnlock()
		if hit {
			return eng, nil
		}
		return s.load(ctx, pair, modelID)
	})
	if err != nil {
		// drop the flight entry so the next caller starts a fresh load
		s.flight.Forget(pair.Key())
		return nil, err
	}
	eng = v.(domain.Engine)
	if shared {
		logger.C(ctx).Debug().Str("pair", pair.Key()).Msg("engine load coalesced")
	}
	return eng, nil
}

func (s *Service) load(ctx context.Context, pair langpack.Pair, modelID string) (domain.Engine, error) {
	if s.cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.LoadTimeout)
		defer cancel()
	}

	start := time.Now()
	eng, err := s.loader.Load(ctx, pair, modelID)
	if err != nil {
		logger.C(ctx).Warn().
			Str("pair", pair.Key()).
			Str("model", modelID).
			Dur("took", time.Since(start)).
			Err(err).
			Msg("engine load failed")
		return nil, perr.Wrapf(err, perr.ErrorCodeEngineLoadFailed, "load %s", pair.Key())
	}

	s.mu.Lock()
	s.resident[pair] = eng
	s.mu.Unlock()

	logger.C(ctx).Info().
		Str("pair", pair.Key()).
		Str("model", modelID).
		Dur("took", time.Since(start)).
		Msg("engine loaded")
	return eng, nil
}

// Resident returns pairs with a loaded engine, sorted by key for
// stable output.
func (s *Service) Resident() []langpack.Pair {
	s.mu.RLock()
	out := make([]langpack.Pair, 0, len(s.resident))
	for p := range s.resident {
		out = append(out, p)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}
