package main

import (
	"log"
	"time"

	"storefront/internal/client"
	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	"storefront/internal/infra/kv"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/payment"
	"storefront/internal/repository"
	"storefront/internal/search"
	"storefront/internal/server"
	"storefront/internal/store"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//カートの保存先を選ぶ
	var kvStore repository.KV
	switch cfg.CartStore {
	case config.CartStoreMemory:
		kvStore = kv.NewMemoryKV()
	case config.CartStoreRedis:
		kvStore = kv.NewRedisKV(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	default:
		kvStore = kv.NewFileKV(cfg.CartFile)
	}

	notifier := store.NewNotifier()
	cartStore := store.NewCartStore(kvStore, notifier)

	//レシートアーカイブ（DATABASE_URLがあるときだけ）
	var receipts repository.ReceiptRepository
	if cfg.DatabaseURL != "" {
		gormDB, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			panic(err)
		}
		if err := gormDB.AutoMigrate(
			&model.Receipt{},
			&model.ReceiptItem{},
		); err != nil {
			panic(err)
		}
		receipts = infraRepo.NewReceiptGormRepository(gormDB)
	}

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//決済プロバイダ
	providers := payment.NewRegistry(
		payment.NewRazorpayProvider(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, ""),
		payment.NewBasePayProvider(cfg.BasePaySecret, idGen),
	)

	//上流APIクライアント
	api := client.New(cfg.UpstreamAPIURL)
	suggester := search.NewSuggester(api)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(cartStore)
	checkoutUC := usecase.NewCheckoutUsecase(
		cartStore,
		providers,
		validator.NewCheckoutValidator(),
		receipts,
		idGen,
		clock,
		cfg.USDToINRRate,
	)

	//Handler生成
	cartH := handler.NewCartHandler(cartUC)
	checkoutH := handler.NewCheckoutHandler(checkoutUC)
	productH := handler.NewProductHandler(api, suggester)
	authH := handler.NewAuthHandler(api)
	orderH := handler.NewOrderHandler(api)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	e := server.New(cfg, cartH, checkoutH, productH, authH, orderH)
	if err := server.Start(e, addr); err != nil {
		panic(err)
	}
}
