package config

import (
	"fmt"
	"os"
	"strconv"
)

// カートの保存先
const (
	CartStoreMemory = "memory"
	CartStoreFile   = "file"
	CartStoreRedis  = "redis"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	UpstreamAPIURL string // 商品・認証・注文を持つ上流REST APIのURL

	JWTSecret string // JWT署名シークレット（上流と共有）

	CartStore string // memory / file / redis
	CartFile  string // fileのときの保存先パス
	RedisAddr string // redisのときの接続先

	RazorpayKeyID     string // Razorpay APIキー
	RazorpayKeySecret string // Razorpayシークレット（署名検証にも使う）
	BasePaySecret     string // BasePayの署名シークレット

	USDToINRRate float64 // USD→INRの固定換算レート

	DatabaseURL string // レシートアーカイブ用Postgres。空ならアーカイブなし

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		UpstreamAPIURL: os.Getenv("UPSTREAM_API_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		CartStore: os.Getenv("CART_STORE"),
		CartFile:  os.Getenv("CART_FILE"),
		RedisAddr: os.Getenv("REDIS_ADDR"),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		BasePaySecret:     os.Getenv("BASEPAY_SECRET"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		GoEnv: os.Getenv("GO_ENV"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.UpstreamAPIURL == "" {
		return Config{}, fmt.Errorf("UPSTREAM_API_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}

	//カート保存先のチェック
	switch cfg.CartStore {
	case "":
		cfg.CartStore = CartStoreFile
	case CartStoreMemory, CartStoreFile, CartStoreRedis:
	default:
		return Config{}, fmt.Errorf("CART_STORE must be memory/file/redis")
	}
	if cfg.CartStore == CartStoreFile && cfg.CartFile == "" {
		cfg.CartFile = "data/storefront.json"
	}
	if cfg.CartStore == CartStoreRedis && cfg.RedisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR is required when CART_STORE=redis")
	}

	//決済プロバイダのチェック
	if cfg.RazorpayKeyID == "" {
		return Config{}, fmt.Errorf("RAZORPAY_KEY_ID is required")
	}
	if cfg.RazorpayKeySecret == "" {
		return Config{}, fmt.Errorf("RAZORPAY_KEY_SECRET is required")
	}
	if cfg.BasePaySecret == "" {
		return Config{}, fmt.Errorf("BASEPAY_SECRET is required")
	}

	rate, err := floatOrDefault("USD_INR_RATE", 83)
	if err != nil {
		return Config{}, err
	}
	cfg.USDToINRRate = rate

	return cfg, nil
}

func floatOrDefault(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	if f <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return f, nil
}
