package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "runeforge/internal/adapter/http"
	metricsinmem "runeforge/internal/adapter/metrics/inmemory"
	"runeforge/internal/adapter/notify"
	"runeforge/internal/adapter/notify/ws"
	gormrepo "runeforge/internal/adapter/repo/gorm"
	"runeforge/internal/adapter/repo/memory"
	redisrepo "runeforge/internal/adapter/repo/redis"
	"runeforge/internal/adapter/repo/sqlite"
	worldruntime "runeforge/internal/adapter/world/runtime"
	"runeforge/internal/app/gameloop"
	"runeforge/internal/app/interaction"
	"runeforge/internal/app/journal"
	"runeforge/internal/app/ports"
	"runeforge/internal/app/savegame"
	"runeforge/internal/app/session"
	"runeforge/internal/app/status"
	"runeforge/internal/config"
	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/player"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	store, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("open %s backend: %v", cfg.SaveBackend, err)
	}
	defer store.close()

	provider := worldruntime.NewProvider(worldruntime.Config{
		Seed:      cfg.WorldSeed,
		Nodes:     cfg.WorldNodes,
		Creatures: cfg.WorldCreatures,
	})
	p := player.New(cat)
	p.RespawnAtHub(provider.GroundHeightAt)
	p.Events()
	sess := session.New(cfg.PlayerID, cat, p, provider.Build(cat))

	saves := savegame.UseCase{
		TxManager: store.tx,
		Saves:     store.saves,
		Events:    store.events,
		Now:       time.Now,
	}
	err = sess.Run(ctx, func(st *session.State) error {
		res, err := saves.Load(ctx, st)
		if err == nil {
			log.Printf("load save player=%s restored=%v %s", st.PlayerID, res.Restored, res.Reason)
		}
		return err
	})
	if err != nil {
		log.Fatalf("load save: %v", err)
	}

	hub := ws.NewHub(log.Default())
	defer hub.Close()
	notifier := notify.Fanout{notify.NewLogSink(log.Default()), hub}
	go serveNotifications(cfg.NotifyAddr, hub)

	loop := &gameloop.Loop{
		Session:  sess,
		SaveGame: saves,
		Notifier: notifier,
		TickRate: cfg.TickRate,
		Now:      time.Now,
	}
	go func() {
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("game loop stopped: %v", err)
		}
	}()

	kpiRecorder := metricsinmem.NewRecorder()
	h := httpadapter.Handler{
		Session: sess,
		InteractionUC: interaction.UseCase{
			Session:  sess,
			SaveGame: saves,
			Notifier: notifier,
			Metrics:  kpiRecorder,
			Now:      time.Now,
		},
		StatusUC:   status.UseCase{Session: sess},
		JournalUC:  journal.UseCase{Events: store.events},
		SaveGameUC: saves,
		Catalog:    cat,
		KPI:        kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	h.RegisterRoutes(s)

	log.Printf("runeforge server listening on %s (player: %s, saves: %s, events: ws://%s/ws)",
		cfg.HTTPAddr, cfg.PlayerID, cfg.SaveBackend, cfg.NotifyAddr)
	s.Spin()
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}

func serveNotifications(addr string, hub *ws.Hub) {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("notification server: %v", err)
	}
}

type backend struct {
	tx     ports.TxManager
	saves  ports.SaveRepository
	events ports.EventRepository
	close  func()
}

func openBackend(ctx context.Context, cfg config.Config) (backend, error) {
	switch cfg.SaveBackend {
	case config.BackendMemory:
		store := memory.NewStore()
		return backend{
			tx:     memory.NewTxManager(store),
			saves:  memory.NewSaveRepo(store),
			events: memory.NewEventRepo(store),
			close:  func() {},
		}, nil
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return backend{}, err
		}
		return backend{tx: store, saves: store, events: store, close: closer("sqlite", store.Close)}, nil
	case config.BackendPostgres:
		db, err := gormrepo.OpenPostgres(cfg.DBDSN)
		if err != nil {
			return backend{}, err
		}
		if cfg.MigrationsDir != "" {
			if err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
				return backend{}, fmt.Errorf("apply migrations: %w", err)
			}
		}
		sqlDB, err := db.DB()
		if err != nil {
			return backend{}, err
		}
		return backend{
			tx:     gormrepo.NewTxManager(db),
			saves:  gormrepo.NewSaveRepo(db),
			events: gormrepo.NewEventRepo(db),
			close:  closer("postgres", sqlDB.Close),
		}, nil
	case config.BackendRedis:
		store, err := redisrepo.Open(ctx, cfg.RedisAddr)
		if err != nil {
			return backend{}, err
		}
		return backend{tx: store, saves: store, events: store, close: closer("redis", store.Close)}, nil
	default:
		return backend{}, fmt.Errorf("unknown save backend %q", cfg.SaveBackend)
	}
}

func closer(name string, fn func() error) func() {
	return func() {
		if err := fn(); err != nil {
			log.Printf("close %s: %v", name, err)
		}
	}
}
