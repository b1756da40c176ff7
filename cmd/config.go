package cmd

import (
	"time"

	"dispatch/internal/core/application/usecases/commands"
)

// Config carries every environment-driven setting the service needs.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	GatewayBaseURL string
	GatewayTimeout time.Duration

	SettlementDelay    time.Duration
	PaymentRetryPolicy commands.RetryPolicy

	ReaperInterval time.Duration
	OrderRetention time.Duration
}
