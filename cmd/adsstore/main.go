package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adsstore/internal/catalog"
	"adsstore/internal/config"
	"adsstore/internal/http/handlers"
	applog "adsstore/internal/log"
	"adsstore/internal/metrics"
	"adsstore/internal/repos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
			log.SetOutput(out)
		}
	}
	applog.Setup(applog.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: out})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStorage()

	rec := metrics.New(prometheus.DefaultRegisterer)
	loader := catalog.NewLoader(cfg.CatalogSource, cfg.CatalogTimeout, catalog.WithObserver(rec))
	// Warm the cache; a failure here is retried on the first page view.
	if c, err := loader.Load(ctx); err != nil {
		applog.Error(nil, "catalog.warmup", err, map[string]any{"source": cfg.CatalogSource})
	} else {
		applog.Info(nil, "catalog.warmup", map[string]any{"products": c.Len()})
	}

	// Templates & app
	engine := html.New(cfg.TemplatesDir, ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Algo salió mal. Intenta de nuevo.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Algo salió mal. Intenta de nuevo.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: out}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || p == "/metrics" || p == "/healthz"
		},
	}))
	app.Use("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "La verificación de seguridad falló. Recarga la página e intenta de nuevo."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static, metrics, health ----------
	log.Printf("[static] /static -> %s", cfg.StaticDir)
	app.Static("/static", cfg.StaticDir)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// ---------- Storefront ----------
	handlers.Mount(app, handlers.NewDeps(storage, loader, cfg, rec))

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("[warn] shutdown: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// openStorage picks the visitor storage backend. SQLite storage with a TTL
// gets a background purge of stale records.
func openStorage(ctx context.Context, cfg config.Config) (repos.Storage, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageRedis:
		client, err := repos.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return repos.NewRedisStorage(client, cfg.StorageTTL), func() { _ = client.Close() }, nil
	default:
		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		st := repos.NewSQLiteStorage(db)
		if cfg.StorageTTL > 0 {
			go purgeLoop(ctx, st, cfg.StorageTTL)
		}
		return st, func() { _ = db.Close() }, nil
	}
}

func purgeLoop(ctx context.Context, st *repos.SQLiteStorage, ttl time.Duration) {
	every := ttl / 4
	if every < time.Minute {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := st.PurgeBefore(ctx, now.Add(-ttl))
			if err != nil {
				applog.Error(nil, "storage.purge", err, nil)
				continue
			}
			if n > 0 {
				applog.Info(nil, "storage.purge", map[string]any{"removed": n})
			}
		}
	}
}
