package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	repo "storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/session"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/joho/godotenv"
)

const sessionTTL = 24 * time.Hour

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}

	//スキーマは起動時に自動作成
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		slog.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//商品が無ければデモデータを入れておく
	seedProducts(productRepo)

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo, productRepo)
	authUC := usecase.NewAuthUsecase(
		userRepo,
		usecase.NewBcryptPasswordHasher(0),
		usecase.NewBcryptPasswordVerifier(),
		validator.NewAuthValidator(),
	)

	//セッションとフラッシュ
	sessions := session.NewManager(cfg.SessionSecret, sessionTTL, cfg.CookieSecure)
	flash := handler.NewFlashStore(cfg.SessionSecret, cfg.CookieSecure)

	//テンプレート
	renderer := handler.NewTemplateRenderer()
	renderer.AddFunc("datetime", func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	})
	if err := renderer.Load("web/templates"); err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	//Handler生成
	handlers := server.Handlers{
		Catalog:  handler.NewCatalogHandler(catalogUC, flash),
		Cart:     handler.NewCartHandler(cartUC, flash),
		Checkout: handler.NewCheckoutHandler(checkoutUC, flash),
		Order:    handler.NewOrderHandler(orderUC, flash),
		Auth:     handler.NewAuthHandler(authUC, sessions, flash),
	}

	//Server起動
	e := server.New(cfg, renderer, sessions, handlers)

	addr := ":" + cfg.Port
	slog.Info("starting server", "addr", addr)
	if err := server.Start(e, addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// seedProducts は商品テーブルが空のときだけデモ商品を入れる。
// 失敗しても起動は続ける。
func seedProducts(products repo.ProductRepository) {
	ctx := context.Background()

	existing, err := products.List(ctx)
	if err != nil || len(existing) > 0 {
		return
	}

	demo := []model.Product{
		{Name: "Coffee Mug", Description: "Ceramic mug, 350ml.", PriceCents: 1250, Stock: 100},
		{Name: "T-Shirt", Description: "Plain cotton t-shirt.", PriceCents: 1999, Stock: 50},
		{Name: "Notebook", Description: "A5 dotted notebook.", PriceCents: 650, Stock: 200},
	}
	for _, p := range demo {
		if _, err := products.Create(ctx, p); err != nil {
			slog.Warn("failed to seed product", "name", p.Name, "error", err)
		}
	}
	slog.Info("seeded demo products", "count", len(demo))
}
