package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// WhatsApp Cloud API.
	VerifyToken     string
	AccessToken     string
	PhoneNumberID   string
	GraphBaseURL    string
	SellerNumber    string
	WelcomeImageURL string

	// Razorpay. Leaving the key pair empty disables live payment links
	// and falls back to StaticPaymentLink plus a "Payment Done" button.
	RazorpayKeyID      string
	RazorpayKeySecret  string
	RazorpayBaseURL    string
	PaymentCallbackURL string
	StaticPaymentLink  string

	// Billing defaults stamped onto orders until a customer profile exists.
	CustomerName    string
	CustomerAddress string

	// Order store. DB_DSN set -> postgres, otherwise line-delimited JSON file.
	DBConnString string
	OrdersFile   string

	// Optional JSON catalog file overriding the built-in catalog.
	CatalogFile string

	OutboundTimeout time.Duration
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),

		VerifyToken:     os.Getenv("VERIFY_TOKEN"),
		AccessToken:     os.Getenv("ACCESS_TOKEN"),
		PhoneNumberID:   os.Getenv("PHONE_NUMBER_ID"),
		GraphBaseURL:    envOrDefault("GRAPH_BASE_URL", "https://graph.facebook.com/v16.0"),
		SellerNumber:    os.Getenv("SELLER_NUMBER"),
		WelcomeImageURL: envOrDefault("WELCOME_IMAGE_URL", "https://plus.unsplash.com/premium_photo-1679809447923-b3250fb2a0ce?q=80&w=2071"),

		// key_id/key_secret are the env names the first deployment used.
		RazorpayKeyID:      envOrDefault("RAZORPAY_KEY_ID", os.Getenv("key_id")),
		RazorpayKeySecret:  envOrDefault("RAZORPAY_KEY_SECRET", os.Getenv("key_secret")),
		RazorpayBaseURL:    envOrDefault("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
		PaymentCallbackURL: os.Getenv("PAYMENT_CALLBACK_URL"),
		StaticPaymentLink:  envOrDefault("STATIC_PAYMENT_LINK", "https://razorpay.me/@sanketmarotisuryawanshi"),

		CustomerName:    envOrDefault("CUSTOMER_NAME", "Sanket"),
		CustomerAddress: envOrDefault("CUSTOMER_ADDRESS", "Bhupeshnagar, Nagpur"),

		DBConnString: os.Getenv("DB_DSN"),
		OrdersFile:   envOrDefault("ORDERS_FILE", "orders.json"),

		CatalogFile: os.Getenv("CATALOG_FILE"),

		OutboundTimeout: envDuration("OUTBOUND_TIMEOUT_SECONDS", 10*time.Second),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}
