package main

import (
	"context"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"linguabot/internal/core/langpack"
	"linguabot/internal/core/token"
	"linguabot/internal/modkit"
	"linguabot/internal/modkit/module"
	"linguabot/internal/platform/config"
	"linguabot/internal/platform/logger"
	phttp "linguabot/internal/platform/net/http"

	"linguabot/internal/adapters/detect"
	"linguabot/internal/adapters/opusmt"
	"linguabot/internal/adapters/telegram"
	"linguabot/internal/services/api"
	enginesdom "linguabot/internal/services/engines/domain"
	enginesmod "linguabot/internal/services/engines/module"
	offersmod "linguabot/internal/services/offers/module"
	prefsdom "linguabot/internal/services/prefs/domain"
	prefsmod "linguabot/internal/services/prefs/module"
	sessionmod "linguabot/internal/services/session/module"
)

func main() {
	root := config.New()
	l := logger.Get()

	pack, err := langpack.Load()
	if err != nil {
		l.Panic().Err(err).Msg("langpack load failed")
	}

	codec := token.NewCodec(pack, root.Prefix("CORE_SESSION_").MayInt("MAX_TOKEN_LEN", token.DefaultMaxLen))

	detector, err := detect.New(pack)
	if err != nil {
		l.Panic().Err(err).Msg("detector init failed")
	}

	engCfg := root.Prefix("CORE_ENGINES_")
	loader, err := opusmt.NewClient(opusmt.Options{
		BaseURL: engCfg.MustString("BASE_URL"),
	})
	if err != nil {
		l.Panic().Err(err).Msg("opusmt client init failed")
	}

	deps := modkit.Deps{Log: *l, Cfg: root, Pack: pack}

	enginesMod := enginesmod.New(deps, loader, enginesmod.Options{})
	prefsMod := prefsmod.New(deps)
	offersMod := offersmod.New(deps, codec)

	bot, err := telegram.New(telegram.FromConfig(root), pack, module.MustPortsOf[prefsdom.StorePort](prefsMod))
	if err != nil {
		l.Panic().Err(err).Msg("telegram connect failed")
	}

	sessionMod := sessionmod.New(
		deps, codec, detector, bot,
		sessionmod.Options{},
		sessionmod.WithDepsModules(offersMod, prefsMod, enginesMod),
	)
	bot.Bind(sessionMod.Ports().(sessionmod.Ports).Router)

	// admin surface (CORE_API_PORT / CORE_API_TOKEN)
	apiCfg := root.Prefix("CORE_API_")
	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), api.Options{
		Deps:        deps,
		Cache:       module.MustPortsOf[enginesdom.CachePort](enginesMod),
		BearerToken: apiCfg.MayString("TOKEN", ""),
		CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return bot.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx) })

	if err := g.Wait(); err != nil && err != context.Canceled {
		l.Panic().Err(err).Msg("bot stopped")
	}
	l.Info().Msg("shut down cleanly")
}
