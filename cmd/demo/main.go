// File: cmd/demo/main.go
//
// Sandbox walkthrough: submits an order, runs the notification listener,
// and exercises a payout. Point it at a sandbox merchant account with
// config-demo.yaml (or env overrides for the secrets).
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cardpay-client/internal/config"
	"cardpay-client/internal/domain/model"
	"cardpay-client/internal/infra/adapters/cardpay"
	"cardpay-client/internal/infra/callback"
	"cardpay-client/internal/infra/encoding"
	"cardpay-client/internal/infra/logging"
	"cardpay-client/internal/infra/metrics"
	"cardpay-client/internal/infra/transport"
	"cardpay-client/internal/infra/web"
)

func main() {
	cfgPath := flag.String("config", "config-demo.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", true, "developer mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	env, err := cardpay.EnvironmentByName(cfg.Gateway.Environment)
	if err != nil {
		log.Fatalf("gateway: %v", err)
	}
	tr := transport.NewHTTPTransport(cfg.Gateway.Timeout, logger)
	client, err := cardpay.New(cardpay.Config{
		WalletID:       cfg.Merchant.WalletID,
		Secret:         cfg.Merchant.Secret,
		ClientLogin:    cfg.Merchant.ClientLogin,
		ClientPassword: cfg.Merchant.ClientPassword,
		Environment:    env,
	}, tr, logger)
	if err != nil {
		log.Fatalf("client: %v", err)
	}

	// ---- notification listener ----
	verifier := callback.NewVerifier(cfg.Merchant.Secret)
	server := web.NewServer(verifier, func(outcome model.Outcome) {
		switch o := outcome.(type) {
		case model.PaymentResult:
			logger.Info().Str("status", o.Status).Str("number", o.Number).Msg("payment notification")
		case model.Redirect:
			logger.Info().Str("url", o.URL).Msg("redirect notification")
		}
	}, cfg.Callback.Path, logger)
	httpSrv := &http.Server{Addr: cfg.Callback.Addr, Handler: server.Router()}
	go func() {
		logger.Info().Str("addr", cfg.Callback.Addr).Msg("callback listener up")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("callback listener stopped")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// ---- hosted-page payment ----
	outcome, err := client.Pay(ctx, encoding.Payload{
		Order: model.Order{
			Number:      time.Now().Unix(),
			Description: "Demo order",
			Amount:      decimal.NewFromInt(120),
			Email:       "customer@example.com",
			Currency:    "USD",
		},
		Items: []model.LineItem{
			{Name: "Computer desk", Count: 1, Price: decimal.NewFromInt(120)},
		},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("pay failed")
	}
	switch o := outcome.(type) {
	case model.Redirect:
		logger.Info().Str("url", o.URL).Msg("send the customer here")
		if o.MD != "" {
			logger.Info().Msg("3-D-Secure step required; call Finish3DS after bank auth")
		}
	case model.PaymentResult:
		logger.Info().Str("status", o.Status).Msg("immediate result")
	}

	// ---- payout ----
	payout, err := client.Payout(ctx, cardpay.PayoutOrder{
		MerchantOrderID: uuid.NewString(),
		Amount:          decimal.RequireFromString("128.97"),
		Currency:        "USD",
		Description:     "Demo payout",
	}, cardpay.PayoutCard{
		Number:      "4000000000000002",
		ExpiryMonth: 7,
		ExpiryYear:  2028,
	})
	if err != nil {
		logger.Error().Err(err).Msg("payout failed")
	} else if len(payout.Errors) > 0 {
		logger.Warn().Str("detail", payout.Errors[0].Detail).Msg("payout rejected")
	} else {
		logger.Info().Str("id", payout.Data.ID).Str("status", payout.Data.Status).Msg("payout accepted")
	}

	// wait for notifications until interrupted
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpSrv.Shutdown(shutdownCtx)
}
