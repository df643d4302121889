package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/config"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/db"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/handlers"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/services"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/store"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/validator"
	"github.com/DanielDerefaka/InvestmentPlatform/internal/websocket"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	users := store.NewUserStore(database)
	deposits := store.NewDepositStore(database)
	withdrawals := store.NewWithdrawalStore(database)
	transactions := store.NewTransactionStore(database)
	admins := store.NewAdminStore(database)
	audit := store.NewAuditStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()
	policy := validator.NewPolicy(cfg.WithdrawalMinAmountLen)
	service := services.NewLedgerService(txRunner, users, deposits, withdrawals, transactions, audit, policy, hub)

	handler := handlers.New(txRunner, cfg, users, transactions, admins, audit, service, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("dashboard API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.Fatalf("shutdown error: %v", err)
	}
}
