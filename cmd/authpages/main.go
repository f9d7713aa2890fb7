package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/django/v3"
	authpages "github.com/goliatone/go-auth-pages"
	"github.com/goliatone/go-auth-pages/provider/identitytoolkit"
	"github.com/goliatone/go-auth-pages/provider/memory"
	"github.com/goliatone/go-auth-pages/web"
	cfs "github.com/goliatone/go-composite-fs"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("pages"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	if cfg.Debug {
		fmt.Println("============")
		fmt.Println(print.MaybeHighlightJSON(cfg))
		fmt.Println("============")
	}

	ctx := context.Background()

	sessions, err := newSessionProvider(ctx, cfg, lgr)
	if err != nil {
		panic(err)
	}

	srv, err := newHTTPServer(cfg)
	if err != nil {
		panic(err)
	}

	hcfg := web.DefaultConfig()
	hcfg.CookieName = cfg.CookieName
	hcfg.CookieSecure = cfg.CookieSecure
	hcfg.CookieDuration = cfg.CookieDuration
	hcfg.Debug = cfg.Debug
	hcfg.CSRF = web.CSRFConfig{
		Disabled:   cfg.CSRFDisabled,
		SecureKey:  []byte(cfg.CSRFKey),
		Expiration: cfg.CSRFExpiration,
	}

	host := web.NewHost(sessions,
		web.WithConfig(hcfg),
		web.WithLogger(lgr.GetLogger("web")),
	)
	host.RegisterRoutes(srv.Router())

	lgr.GetLogger("main").Info("serving auth pages", "addr", cfg.Addr, "provider", cfg.Provider)
	srv.Serve(cfg.Addr)

	WaitExitSignal()
}

func newSessionProvider(ctx context.Context, cfg Config, lgr *glog.BaseLogger) (web.SessionProvider, error) {
	stateLogger := lgr.GetLogger("auth-state")

	var open func(ctx context.Context, token string) (web.Session, error)

	switch cfg.Provider {
	case providerIdentityToolkit:
		icfg := identitytoolkit.DefaultConfig(cfg.APIKey, cfg.ProjectID)
		if cfg.IdentityEndpoint != "" {
			icfg.Endpoint = cfg.IdentityEndpoint
		}
		icfg.Timeout = cfg.IdentityTimeout
		icfg.Logger = lgr.GetLogger("identitytoolkit")

		client, err := identitytoolkit.New(icfg)
		if err != nil {
			return nil, err
		}
		open = func(ctx context.Context, token string) (web.Session, error) {
			return client.Session(ctx, token), nil
		}

	default:
		store := memory.New()
		if cfg.SeedEmail != "" {
			sess := store.Session(ctx, "")
			if _, err := sess.SignUp(ctx, cfg.SeedEmail, cfg.SeedPassword); err != nil {
				return nil, err
			}
			lgr.GetLogger("memory").Info("seeded memory account", "email", cfg.SeedEmail)
		}
		open = func(ctx context.Context, token string) (web.Session, error) {
			return store.Session(ctx, token), nil
		}
	}

	return web.SessionProviderFunc(func(ctx context.Context, token string) (web.Session, error) {
		sess, err := open(ctx, token)
		if err != nil {
			return nil, err
		}
		authpages.LogAuthState(sess, stateLogger)
		return sess, nil
	}), nil
}

func newHTTPServer(cfg Config) (router.Server[*fiber.App], error) {
	var views fs.FS = web.ViewsFS()
	if cfg.ViewsDir != "" {
		if _, err := os.Stat(cfg.ViewsDir); err != nil {
			return nil, fmt.Errorf("views dir %q: %w", cfg.ViewsDir, err)
		}
		// disk overrides embedded, so it comes first
		views = cfs.NewCompositeFS(os.DirFS(cfg.ViewsDir), views)
	}

	engine := django.NewFileSystem(http.FS(views), ".html")

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			EnablePrintRoutes: cfg.Debug,
			StrictRouting:     false,
			Views:             engine,
		}))
	})

	return srv, nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
