// Package service implements the session router
package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"linguabot/internal/core/langpack"
	"linguabot/internal/core/normalize"
	"linguabot/internal/core/token"
	perr "linguabot/internal/platform/errors"
	"linguabot/internal/platform/logger"
	enginesdom "linguabot/internal/services/engines/domain"
	offersdom "linguabot/internal/services/offers/domain"
	prefsdom "linguabot/internal/services/prefs/domain"
	"linguabot/internal/services/session/domain"
)

// Config for the session service
type Config struct {
	// TranslateTimeout bounds one translation execution. 0 means no bound.
	TranslateTimeout time.Duration
}

// Service implements domain.RouterPort
type Service struct {
	pack     *langpack.Pack
	codec    *token.Codec
	detector domain.DetectorPort
	resolver offersdom.ResolverPort
	prefs    prefsdom.StorePort
	engines  enginesdom.CachePort
	present  domain.PresenterPort
	cfg      Config

	// dedups concurrent identical selections so a double click runs the
	// engine once while each click still gets its own delivery
	flight singleflight.Group
}

// New constructs the router
func New(
	pack *langpack.Pack,
	codec *token.Codec,
	detector domain.DetectorPort,
	resolver offersdom.ResolverPort,
	prefs prefsdom.StorePort,
	engines enginesdom.CachePort,
	present domain.PresenterPort,
	cfg Config,
) *Service {
	switch {
	case pack == nil:
		panic("session: nil pack")
	case codec == nil:
		panic("session: nil codec")
	case detector == nil:
		panic("session: nil detector")
	case resolver == nil:
		panic("session: nil resolver")
	case prefs == nil:
		panic("session: nil prefs")
	case engines == nil:
		panic("session: nil engines")
	case present == nil:
		panic("session: nil presenter")
	}
	return &Service{
		pack:     pack,
		codec:    codec,
		detector: detector,
		resolver: resolver,
		prefs:    prefs,
		engines:  engines,
		present:  present,
		cfg:      cfg,
	}
}

// HandleMessage detects the message language, resolves candidates, and
// attaches offers. Every drop path is silent: no user ever sees an
// error from a message they did not act on.
func (s *Service) HandleMessage(ctx context.Context, msg domain.Message) error {
	if msg.ActorBot || msg.Text == "" {
		return nil
	}
	ctx = s.annotate(ctx, int64(msg.Actor), msg.ChatID)
	log := logger.C(ctx)

	cleaned := normalize.Clean(msg.Text)
	if !normalize.Translatable(cleaned) {
		return nil
	}

	src, err := s.detector.Detect(ctx, cleaned)
	if err != nil {
		log.Debug().Err(err).Msg("detection failed, dropping")
		return nil
	}

	offers, err := s.resolver.Resolve(src, s.prefs.Snapshot())
	if err != nil {
		log.Warn().Err(err).Str("source", string(src)).Msg("resolve failed, dropping")
		return nil
	}
	if len(offers) == 0 {
		return nil
	}

	if err := s.present.Offer(ctx, msg, offers); err != nil {
		log.Warn().Err(err).Int("offers", len(offers)).Msg("offer send failed")
		return err
	}
	log.Debug().Str("source", string(src)).Int("offers", len(offers)).Msg("offers sent")
	return nil
}

// HandleSelection decodes the token, resolves the engine, executes the
// translation, and delivers the result privately. Every failure becomes
// exactly one ephemeral notice to the acting user.
func (s *Service) HandleSelection(ctx context.Context, sel domain.Selection) error {
	ctx = s.annotate(ctx, int64(sel.Actor), sel.ChatID)
	log := logger.C(ctx)

	req, err := s.codec.Decode(sel.Token)
	if err != nil {
		log.Debug().Err(err).Msg("malformed selection token")
		s.notify(ctx, sel, "That button is no longer valid.")
		return nil
	}

	text := req.Text
	if text == "" {
		text = sel.RepliedText
	}
	if text == "" {
		// original message was edited or deleted before the click
		log.Debug().Str("pair", req.Pair.Key()).Msg("selection has no recoverable text")
		s.notify(ctx, sel, "The original message is gone, nothing to translate.")
		return nil
	}

	eng, err := s.engines.GetOrLoad(ctx, req.Pair)
	if err != nil {
		log.Warn().Err(err).Str("pair", req.Pair.Key()).Msg("engine unavailable")
		s.notify(ctx, sel, s.engineNotice(req.Pair, err))
		return nil
	}

	out, err := s.translate(ctx, eng, req.Pair, text)
	if err != nil {
		log.Warn().Err(err).Str("pair", req.Pair.Key()).Msg("translation failed")
		s.notify(ctx, sel, "Translation failed, please try again.")
		return nil
	}

	if err := s.present.Deliver(ctx, sel.Actor, out); err != nil {
		log.Warn().Err(err).Msg("private delivery failed")
		s.notify(ctx, sel, "Could not message you privately. Start a chat with the bot first.")
		return nil
	}
	log.Info().Str("pair", req.Pair.Key()).Msg("translation delivered")
	return nil
}

// translate coalesces identical in-flight requests by (pair, text) and
// bounds each execution by the configured timeout. Waiters share the
// winning caller's ctx; cancelling it fails the whole flight, and the
// entry is forgotten so the next identical request re-executes. All
// selections arrive on the bot's run context, so waiters and winner
// share a lifetime.
func (s *Service) translate(ctx context.Context, eng enginesdom.Engine, pair langpack.Pair, text string) (string, error) {
	key := pair.Key() + "\x00" + text
	v, err, _ := s.flight.Do(key, func() (any, error) {
		tctx := ctx
		if s.cfg.TranslateTimeout > 0 {
			var cancel context.CancelFunc
			tctx, cancel = context.WithTimeout(ctx, s.cfg.TranslateTimeout)
			defer cancel()
		}
		return eng.Translate(tctx, text)
	})
	if err != nil {
		s.flight.Forget(key)
		return "", err
	}
	return v.(string), nil
}

func (s *Service) engineNotice(pair langpack.Pair, err error) string {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeUnsupportedPair:
		return fmt.Sprintf("Sorry, %s to %s is not supported.",
			s.pack.Name(pair.Source), s.pack.Name(pair.Target))
	case perr.ErrorCodeEngineLoadFailed, perr.ErrorCodeUnavailable:
		return "The translation engine is unavailable right now, please try again."
	default:
		return "Translation failed, please try again."
	}
}

// notify is best effort; a failed notice is logged and swallowed so the
// router keeps serving.
func (s *Service) notify(ctx context.Context, sel domain.Selection, text string) {
	if err := s.present.Notify(ctx, sel, text); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("ephemeral notice failed")
	}
}

func (s *Service) annotate(ctx context.Context, actor, chat int64) context.Context {
	return logger.WithEvent(ctx,
		uuid.NewString(),
		strconv.FormatInt(actor, 10),
		strconv.FormatInt(chat, 10),
	)
}
