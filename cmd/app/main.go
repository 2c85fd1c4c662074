package main

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ecomdev/storefront-backend/internal/buyer"
	"github.com/ecomdev/storefront-backend/internal/cart"
	"github.com/ecomdev/storefront-backend/internal/category"
	"github.com/ecomdev/storefront-backend/internal/config"
	"github.com/ecomdev/storefront-backend/internal/mail"
	"github.com/ecomdev/storefront-backend/internal/order"
	"github.com/ecomdev/storefront-backend/internal/payment"
	"github.com/ecomdev/storefront-backend/internal/product"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger(logger))

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		logger.Fatal("schema setup", zap.Error(err))
	}

	buyerService := buyer.NewService(buyer.NewPostgresRepository(db))
	buyerHandler := buyer.NewHandler(buyerService, cfg.JWTSecret)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))

	cartService := cart.NewService(cart.NewPostgresRepository(db), productService, buyerService)
	cartHandler := cart.NewHandler(cartService)

	orderService := order.NewService(order.NewPostgresRepository(db), cartService, buyerService, productService)
	orderHandler := order.NewHandler(orderService)

	mailer := mail.NewSMTPSender(cfg.SMTP, logger)
	gateway := payment.NewStripeGateway(cfg.Stripe)
	paymentService := payment.NewService(orderService, productService, gateway, mailer, cfg.Stripe, logger)
	paymentHandler := payment.NewHandler(paymentService)

	// public routes first; everything registered after the jwt middleware
	// requires a bearer token
	buyerHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)
	paymentHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	buyerHandler.RegisterProtectedRoutes(app)

	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)))
		return err
	}
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS buyers (
			buyer_id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			full_name TEXT,
			phone TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS category (
			category_id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			slug TEXT UNIQUE NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS product (
			product_id SERIAL PRIMARY KEY,
			pid TEXT,
			title TEXT NOT NULL,
			slug TEXT UNIQUE NOT NULL,
			description TEXT,
			category_id INT REFERENCES category (category_id),
			price NUMERIC NOT NULL DEFAULT 0,
			old_price NUMERIC NOT NULL DEFAULT 0,
			shipping_amount NUMERIC NOT NULL DEFAULT 0,
			stock_qty INT NOT NULL DEFAULT 0,
			in_stock BOOLEAN NOT NULL DEFAULT TRUE,
			status TEXT NOT NULL DEFAULT 'published',
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			vendor_email TEXT,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS cart_lines (
			line_id SERIAL PRIMARY KEY,
			cart_id TEXT NOT NULL,
			product_id INT NOT NULL REFERENCES product (product_id),
			buyer_id INT REFERENCES buyers (buyer_id),
			qty INT NOT NULL,
			price NUMERIC NOT NULL,
			sub_total NUMERIC NOT NULL,
			shipping_amount NUMERIC NOT NULL DEFAULT 0,
			service_fee NUMERIC NOT NULL DEFAULT 0,
			tax_fee NUMERIC NOT NULL DEFAULT 0,
			total NUMERIC NOT NULL,
			country TEXT,
			size TEXT,
			color TEXT,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			oid TEXT UNIQUE NOT NULL,
			buyer_id INT REFERENCES buyers (buyer_id),
			sub_total NUMERIC NOT NULL DEFAULT 0,
			shipping_amount NUMERIC NOT NULL DEFAULT 0,
			service_fee NUMERIC NOT NULL DEFAULT 0,
			tax_fee NUMERIC NOT NULL DEFAULT 0,
			total NUMERIC NOT NULL DEFAULT 0,
			initial_total NUMERIC NOT NULL DEFAULT 0,
			discount NUMERIC NOT NULL DEFAULT 0,
			payment_status TEXT NOT NULL DEFAULT 'Pending',
			order_status TEXT NOT NULL DEFAULT 'Processing',
			full_name TEXT,
			email TEXT,
			phone TEXT,
			address TEXT,
			city TEXT,
			state TEXT,
			country TEXT,
			zipcode TEXT,
			stripe_session_id TEXT,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			item_id SERIAL PRIMARY KEY,
			oid TEXT UNIQUE NOT NULL,
			order_id INT NOT NULL REFERENCES orders (order_id),
			product_id INT NOT NULL REFERENCES product (product_id),
			qty INT NOT NULL,
			price NUMERIC NOT NULL,
			sub_total NUMERIC NOT NULL,
			shipping_amount NUMERIC NOT NULL DEFAULT 0,
			service_fee NUMERIC NOT NULL DEFAULT 0,
			tax_fee NUMERIC NOT NULL DEFAULT 0,
			total NUMERIC NOT NULL,
			initial_total NUMERIC NOT NULL DEFAULT 0,
			discount NUMERIC NOT NULL DEFAULT 0,
			size TEXT,
			color TEXT,
			country TEXT,
			vendor_email TEXT,
			created_at TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
