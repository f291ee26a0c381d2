package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mishaRomanov/online-store/internal/models"
)

type Config struct {
	DB_HOST        string
	DB_PORT        string
	DB_USER        string
	DB_PASSWORD    string
	DB_NAME        string
	ES_URL         string
	ES_USER        string
	ES_PASSWORD    string
	JWT_SECRET     string
	REFRESH_SECRET string
	KAFKA_ADDRESS  string
	MEDIA_DIR      string
	LOG_LEVEL      string

	Checkout Checkout
}

// Checkout carries the order-related knobs that used to be package-level
// globals. It is built once at startup and handed to the order services.
type Checkout struct {
	ShippingFee     decimal.Decimal
	PaymentMethods  map[string]string
	CodeLength      int
	CodePrefix      string
	OrdersPageSize  int
	CatalogPageSize int
}

func defaultCheckout() Checkout {
	return Checkout{
		ShippingFee: decimal.NewFromInt(5),
		PaymentMethods: map[string]string{
			"Cash":     "Cash On Delivery",
			"PayStack": "PayStack",
		},
		CodeLength:      9,
		CodePrefix:      "",
		OrdersPageSize:  5,
		CatalogPageSize: 8,
	}
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:        os.Getenv("DB_HOST"),
		DB_PORT:        os.Getenv("DB_PORT"),
		DB_USER:        os.Getenv("DB_USER"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		REFRESH_SECRET: os.Getenv("REFRESH_SECRET"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		MEDIA_DIR:      os.Getenv("MEDIA_DIR"),
		LOG_LEVEL:      os.Getenv("LOG_LEVEL"),
		Checkout:       defaultCheckout(),
	}

	if v := os.Getenv("SHIPPING_FEE"); v != "" {
		fee, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SHIPPING_FEE %q: %w", v, err)
		}
		config.Checkout.ShippingFee = fee
	}
	if v := os.Getenv("ORDER_CODE_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid ORDER_CODE_LENGTH %q", v)
		}
		config.Checkout.CodeLength = n
	}
	if v := os.Getenv("ORDER_CODE_PREFIX"); v != "" {
		config.Checkout.CodePrefix = v
	}
	if config.MEDIA_DIR == "" {
		config.MEDIA_DIR = "media"
	}

	return config, nil
}

func InitDB(configuration *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		configuration.DB_USER,
		configuration.DB_PASSWORD,
		configuration.DB_HOST,
		configuration.DB_PORT,
		configuration.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.User{},
		&models.RefreshToken{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	); err != nil {
		return nil, fmt.Errorf("не удалось выполнить миграцию: %w", err)
	}
	return db, nil
}
