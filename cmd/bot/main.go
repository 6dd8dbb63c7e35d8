package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/catalog"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/config"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/db"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/httpserver"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/logging"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/observability"
	cartrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/cart"
	orderrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/order"
	refrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/reference"
	sessionrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/session"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/razorpay"
	conversationsvc "github.com/sankezzz/UdyamSakhi-Backend/internal/service/conversation"
	paymentsvc "github.com/sankezzz/UdyamSakhi-Backend/internal/service/payment"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/whatsapp"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.MustNew("bot")
	defer logger.Sync()

	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			logger.Fatal("load catalog", zap.String("path", cfg.CatalogFile), zap.Error(err))
		}
		cat = loaded
	}

	ctx := context.Background()
	var pool *pgxpool.Pool
	var orders orderrepo.Repository
	if cfg.DBConnString != "" {
		var err error
		pool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatal("connect to db", zap.Error(err))
		}
		defer pool.Close()
		orders = orderrepo.NewPostgres(pool)
	} else {
		orders = orderrepo.NewFile(cfg.OrdersFile)
	}

	carts := cartrepo.NewMemory()
	refs := refrepo.NewMemory()
	sessions := sessionrepo.NewMemory()
	metrics := observability.NewMetrics()

	notifier := whatsapp.NewClient(cfg.GraphBaseURL, cfg.AccessToken, cfg.PhoneNumberID, cfg.OutboundTimeout, logger)

	var payments conversationsvc.PaymentLinks
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		payments = razorpay.NewClient(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.OutboundTimeout)
		logger.Info("razorpay live mode enabled")
	} else {
		logger.Info("razorpay keys not set, using static payment link")
	}

	conversation := conversationsvc.New(conversationsvc.Deps{
		Catalog:  cat,
		Carts:    carts,
		Refs:     refs,
		Sessions: sessions,
		Orders:   orders,
		Notifier: notifier,
		Payments: payments,
		Metrics:  metrics,
		Logger:   logger,
	}, conversationsvc.Settings{
		SellerNumber:       cfg.SellerNumber,
		WelcomeImageURL:    cfg.WelcomeImageURL,
		StaticPaymentLink:  cfg.StaticPaymentLink,
		PaymentCallbackURL: cfg.PaymentCallbackURL,
		CustomerName:       cfg.CustomerName,
		CustomerAddress:    cfg.CustomerAddress,
	})

	reconciler := paymentsvc.New(paymentsvc.Deps{
		Carts:    carts,
		Refs:     refs,
		Sessions: sessions,
		Orders:   orders,
		Notifier: notifier,
		Metrics:  metrics,
		Logger:   logger,
	}, paymentsvc.Settings{
		SellerNumber:    cfg.SellerNumber,
		CustomerName:    cfg.CustomerName,
		CustomerAddress: cfg.CustomerAddress,
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger, pool, httpserver.Deps{
		Conversation: conversation,
		Payments:     reconciler,
		VerifyToken:  cfg.VerifyToken,
		Metrics:      metrics,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
