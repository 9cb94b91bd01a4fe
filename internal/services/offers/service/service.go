// Package service implements candidate resolution
package service

import (
	"linguabot/internal/core/langpack"
	"linguabot/internal/core/token"
	"linguabot/internal/services/offers/domain"
	prefsdom "linguabot/internal/services/prefs/domain"
)

// Service implements domain.ResolverPort
type Service struct {
	pack  *langpack.Pack
	codec *token.Codec
}

// New constructs the resolver
func New(pack *langpack.Pack, codec *token.Codec) *Service {
	if pack == nil {
		panic("offers: nil pack")
	}
	if codec == nil {
		panic("offers: nil codec")
	}
	return &Service{pack: pack, codec: codec}
}

// Resolve walks the snapshot in order, emitting at most one offer per
// distinct target. Skips: unsupported source (empty result), target
// equal to source, targets already offered, pairs with no engine.
func (s *Service) Resolve(source langpack.Code, snapshot []prefsdom.Preference) ([]domain.Offer, error) {
	if !s.pack.Supported(source) {
		return nil, nil
	}

	var out []domain.Offer
	offered := make(map[langpack.Code]bool, len(snapshot))
	for _, p := range snapshot {
		if p.Target == source || offered[p.Target] {
			continue
		}
		pair := langpack.Pair{Source: source, Target: p.Target}
		if !s.pack.PairSupported(pair) {
			continue
		}
		tok, err := s.codec.Encode(pair)
		if err != nil {
			return nil, err
		}
		offered[p.Target] = true
		out = append(out, domain.Offer{
			Pair:  pair,
			Label: s.pack.Label(p.Target),
			Token: tok,
		})
	}
	return out, nil
}
