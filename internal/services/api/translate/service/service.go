// Package service implements direct translation for the admin surface
package service

import (
	"context"

	"linguabot/internal/core/langpack"
	perr "linguabot/internal/platform/errors"
	"linguabot/internal/services/api/translate/domain"
	enginesdom "linguabot/internal/services/engines/domain"
)

// Service implements domain.TranslatorPort
type Service struct {
	pack  *langpack.Pack
	cache enginesdom.CachePort
}

// New constructs the translator
func New(pack *langpack.Pack, cache enginesdom.CachePort) *Service {
	if pack == nil {
		panic("translate: nil pack")
	}
	if cache == nil {
		panic("translate: nil cache")
	}
	return &Service{pack: pack, cache: cache}
}

// Translate resolves the engine for the requested pair and runs it
func (s *Service) Translate(ctx context.Context, req domain.TranslateRequest) (domain.TranslateResponse, error) {
	src, err := s.pack.ParseCode(req.Source)
	if err != nil {
		return domain.TranslateResponse{}, perr.WithField(err, "source")
	}
	dst, err := s.pack.ParseCode(req.Target)
	if err != nil {
		return domain.TranslateResponse{}, perr.WithField(err, "target")
	}
	if src == dst {
		return domain.TranslateResponse{}, perr.InvalidArgf("source and target are the same")
	}

	pair := langpack.Pair{Source: src, Target: dst}
	eng, err := s.cache.GetOrLoad(ctx, pair)
	if err != nil {
		return domain.TranslateResponse{}, err
	}
	out, err := eng.Translate(ctx, req.Text)
	if err != nil {
		return domain.TranslateResponse{}, err
	}
	return domain.TranslateResponse{
		Source:      string(src),
		Target:      string(dst),
		Model:       eng.ModelID(),
		Translation: out,
	}, nil
}
