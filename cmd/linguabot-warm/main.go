// linguabot-warm preloads the translation engine for every supported
// pair so the first selection in chat does not pay the cold-load cost.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"linguabot/internal/adapters/opusmt"
	"linguabot/internal/core/langpack"
	"linguabot/internal/modkit"
	"linguabot/internal/modkit/module"
	"linguabot/internal/platform/config"
	"linguabot/internal/platform/logger"
	enginesdom "linguabot/internal/services/engines/domain"
	enginesmod "linguabot/internal/services/engines/module"
)

func main() {
	var (
		parallel = flag.Int("parallel", 2, "concurrent loads (>=1)")
		timeout  = flag.Duration("timeout", 0, "per-pair load timeout (0 = config default)")
	)
	flag.Parse()

	root := config.New()
	l := logger.Get()

	pack, err := langpack.Load()
	if err != nil {
		l.Panic().Err(err).Msg("langpack load failed")
	}

	loader, err := opusmt.NewClient(opusmt.Options{
		BaseURL: root.Prefix("CORE_ENGINES_").MustString("BASE_URL"),
	})
	if err != nil {
		l.Panic().Err(err).Msg("opusmt client init failed")
	}

	deps := modkit.Deps{Log: *l, Cfg: root, Pack: pack}
	cache := module.MustPortsOf[enginesdom.CachePort](
		enginesmod.New(deps, loader, enginesmod.Options{LoadTimeout: *timeout}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *parallel < 1 {
		*parallel = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*parallel)

	start := time.Now()
	var failed atomic.Bool
	for _, pair := range pack.Pairs() {
		pair := pair
		g.Go(func() error {
			t0 := time.Now()
			if _, err := cache.GetOrLoad(gctx, pair); err != nil {
				l.Error().Str("pair", pair.Key()).Err(err).Msg("warm failed")
				failed.Store(true)
				return nil // keep warming the rest
			}
			l.Info().Str("pair", pair.Key()).Dur("took", time.Since(t0)).Msg("warm ok")
			return nil
		})
	}
	_ = g.Wait()

	l.Info().Dur("total", time.Since(start)).Int("pairs", len(pack.Pairs())).Msg("warmup done")
	if failed.Load() {
		os.Exit(1)
	}
}
