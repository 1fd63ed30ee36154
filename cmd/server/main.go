package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SlpAus/khatira-board-backend/api"
	"github.com/SlpAus/khatira-board-backend/internal/admin"
	"github.com/SlpAus/khatira-board-backend/internal/board"
	"github.com/SlpAus/khatira-board-backend/internal/identity"
	"github.com/SlpAus/khatira-board-backend/internal/khatira"
	"github.com/SlpAus/khatira-board-backend/internal/phase"
	"github.com/SlpAus/khatira-board-backend/internal/platform/config"
	"github.com/SlpAus/khatira-board-backend/internal/platform/database"
	"github.com/SlpAus/khatira-board-backend/internal/platform/health"
	"github.com/SlpAus/khatira-board-backend/internal/platform/logging"
	"github.com/SlpAus/khatira-board-backend/internal/platform/shutdown"
	"github.com/SlpAus/khatira-board-backend/internal/platform/startup"
	"github.com/SlpAus/khatira-board-backend/internal/vote"
	"github.com/SlpAus/khatira-board-backend/pkg/token"
)

func main() {
	// 1. 加载配置并初始化日志
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Init("info", "khatira-board")
		logging.Logger.Fatal().Err(err).Msg("无法加载配置")
	}
	logging.Init(cfg.Log.Level, "khatira-board")

	// 2. 初始化数据库和Redis
	gormLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := database.Open(cfg.Database, gormLevel)
	if err != nil {
		logging.Logger.Fatal().Err(err).Msg("数据库初始化失败")
	}
	rdb, err := database.OpenRedis(context.Background(), cfg.Database.Redis)
	if err != nil {
		logging.Logger.Fatal().Err(err).Msg("Redis初始化失败")
	}

	// 3. 执行应用启动初始化流程
	if err := startup.InitializeApplication(db); err != nil {
		logging.Logger.Fatal().Err(err).Msg("应用初始化失败，无法启动")
	}

	issuer, err := token.NewIssuer(cfg.Admin.TokenSecret, cfg.Admin.SessionTTL)
	if err != nil {
		logging.Logger.Fatal().Err(err).Msg("无法创建管理员令牌签发者")
	}
	if cfg.Admin.TokenSecret == "" {
		logging.Logger.Warn().Msg("未配置 admin.tokenSecret，使用随机密钥，重启后管理员需要重新登录")
	}

	// 4. 组装各模块
	cookies := identity.Cookies{Secure: cfg.Server.Cookie.Secure}
	phases := phase.NewController(db)
	revocations := admin.NewRevocationStore(rdb)
	handlers := api.Handlers{
		Khatira: khatira.NewHandler(khatira.NewService(db)),
		Vote:    vote.NewHandler(vote.NewService(db), cookies),
		Board:   board.NewHandler(board.NewProjector(db), phases),
		Admin: admin.NewHandler(
			admin.NewAuthenticator(cfg.Admin),
			issuer,
			revocations,
			admin.NewService(db),
			phases,
			cfg.Server.Cookie.Secure,
		),
		Health:      health.NewChecker(db, rdb),
		Cookies:     cookies,
		Issuer:      issuer,
		Revocations: revocations,
	}

	// 5. 创建Gin引擎
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, handlers)

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	coordinator := shutdown.NewCoordinator()
	if rdb != nil {
		coordinator.Register("redis", rdb.Close)
	}
	coordinator.Register("database", func() error { return database.Close(db) })

	go func() {
		logging.Logger.Info().Str("address", cfg.Server.Address).Msg("服务器已准备就绪，开始监听")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Error().Err(err).Msg("服务器启动失败")
			os.Exit(1)
		}
	}()

	// 6. 阻塞直到收到停机信号
	coordinator.ListenForSignalsAndShutdown(server)
}
