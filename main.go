package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sea-routing/cache"
	"sea-routing/config"
	"sea-routing/db"
	"sea-routing/handler"
	"sea-routing/logger"
	"sea-routing/metrics"
	"sea-routing/service"
)

var version = "dev"

// RedisOptions 路径缓存, 地址为空时不启用
type RedisOptions struct {
	Addr     string `long:"redis-addr"     env:"REDIS_ADDR"     description:"Redis address for the plan cache (empty disables it)"`
	Password string `long:"redis-password" env:"REDIS_PASSWORD" description:"Redis password"`
	DB       int    `long:"redis-db"       env:"REDIS_DB"       description:"Redis database" default:"0"`
}

type Options struct {
	Logger logger.Logger `group:"Logger options"`
	DB     db.Options    `group:"Database options"`
	Redis  RedisOptions  `group:"Redis options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE"    description:"Path to configuration file" default:"config.yaml"`
	Addr       string `short:"a" long:"addr"   env:"LISTEN_ADDRESS" description:"Address to listen on"       default:":8080"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logr := opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, cfg, logr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func run(ctx context.Context, opts Options, cfg *config.Config, logr zerolog.Logger) error {
	// 1. 连接数据库
	gdb, err := db.Open(ctx, opts.DB)
	if err != nil {
		return err
	}

	// 2. 从数据库构建航线图 (只读, 启动时加载一次)
	graph, err := db.NewTurnRepository(gdb).LoadGraph(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("edges", len(graph.Turns)).Int("nodes", len(graph.Nodes)).Msg("Routing graph loaded")

	prom := metrics.Init(metrics.BuildInfo{Version: version})
	prom.SetGraphEdges(len(graph.Turns))

	// 3. 组装服务
	locations := cache.NewLocationCache(db.NewLocationRepository(gdb), cfg.Cache.LocationCacheSize, cfg.Cache.LocationCacheTTL)
	search := service.NewLocationSearch(locations, service.SearchOptions{
		DefaultTake:    cfg.Search.DefaultTake,
		DefaultRangeKm: cfg.Search.DefaultRangeKm,
		TargetType:     cfg.Search.TargetType,
	}, logr.With().Str("component", "search").Logger(), prom)

	plannerOpts := []service.PlannerOption{service.WithRecorder(prom)}
	if opts.Redis.Addr != "" && cfg.Cache.PlanTTL > 0 {
		rc, err := cache.NewRedisPlanCache(ctx, opts.Redis.Addr,
			cache.WithPassword(opts.Redis.Password), cache.WithDB(opts.Redis.DB))
		if err != nil {
			return err
		}
		defer rc.Close()
		plannerOpts = append(plannerOpts, service.WithPlanCache(rc, cfg.Cache.PlanTTL))
		log.Info().Str("addr", opts.Redis.Addr).Dur("ttl", cfg.Cache.PlanTTL).Msg("Plan cache enabled")
	}

	routeLog := logr.With().Str("component", "routes").Logger()
	resolver := service.NewResolver(locations, graph, routeLog)
	planner := service.NewPlanner(graph, routeLog, plannerOpts...)
	routes := service.NewRoutes(resolver, planner, service.NewRoutePlanner(resolver, planner, routeLog))

	// 4. 路由
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger(logr), prom.Middleware())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(prom.Handler()))
	handler.New(search, routes, logr.With().Str("component", "http").Logger()).Register(r)

	// 5. 启动
	srv := &http.Server{Addr: opts.Addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", opts.Addr).Str("version", version).Msg("Web server started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info().Msg("Shutting down")
	return srv.Shutdown(shutdownCtx)
}
