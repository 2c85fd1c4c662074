package config

import "os"

// Config holds environment-driven configuration.
// main loads .env via godotenv before calling Load, so a plain env lookup
// is all that is needed here. Components receive the sub-structs through
// their constructors instead of reading the environment themselves.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	Stripe      StripeConfig
	SMTP        SMTPConfig
}

// StripeConfig configures the payment processor integration.
type StripeConfig struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

// SMTPConfig configures outgoing order notifications.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("STOREFRONT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	successURL := os.Getenv("STRIPE_SUCCESS_URL")
	if successURL == "" {
		successURL = "http://localhost:5173/payment-success"
	}
	cancelURL := os.Getenv("STRIPE_CANCEL_URL")
	if cancelURL == "" {
		cancelURL = "http://localhost:5173/payment-failed/"
	}

	return Config{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Stripe: StripeConfig{
			SecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
			SuccessURL: successURL,
			CancelURL:  cancelURL,
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     os.Getenv("SMTP_PORT"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
	}
}
