package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevin07696/globalonepay/internal/adapters/globalone"
	"github.com/kevin07696/globalonepay/internal/adapters/secrets"
	"github.com/kevin07696/globalonepay/internal/config"
)

func main() {
	var (
		envFile = flag.String("env", ".env", "Optional .env file loaded before reading the environment")
		action  = flag.String("action", "", "Action to perform: register, unregister, pay, pay-registered, refund")
		args    cliArgs
	)
	flag.StringVar(&args.MerchantRef, "merchant-ref", "", "Merchant reference of the stored card (generated for register when empty)")
	flag.StringVar(&args.Reference, "reference", "", "Gateway CARDREFERENCE of a stored card")
	flag.StringVar(&args.OrderID, "order-id", "", "Order id (generated when empty)")
	flag.StringVar(&args.PaymentRef, "payment-ref", "", "UNIQUEREF of the payment to refund")
	flag.StringVar(&args.Amount, "amount", "", "Amount, e.g. 10.50")
	flag.StringVar(&args.Currency, "currency", "EUR", "ISO 4217 currency code")
	flag.StringVar(&args.CardNumber, "card-number", "", "Card number")
	flag.StringVar(&args.CardExpiry, "card-expiry", "", "Card expiry as MMYY")
	flag.StringVar(&args.CardType, "card-type", "", "Card type, e.g. VISA or MASTERCARD")
	flag.StringVar(&args.CardHolderName, "card-holder", "", "Card holder name")
	flag.StringVar(&args.CVV, "cvv", "", "Card security code")
	flag.StringVar(&args.TransactionType, "transaction-type", "", "Payment TRANSACTIONTYPE (default 7)")
	flag.StringVar(&args.Operator, "operator", "", "Refund operator")
	flag.StringVar(&args.Reason, "reason", "", "Refund reason")
	flag.StringVar(&args.JSONFile, "json", "", "JSON file with the request fields (flags override it)")
	flag.Parse()

	if *action == "" {
		printUsage()
		os.Exit(1)
	}

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Logger)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sharedSecret, err := secrets.ResolveSharedSecret(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to resolve shared secret",
			zap.String("secret_manager", cfg.Secrets.Manager),
			zap.Error(err),
		)
	}

	adapter, err := globalone.NewAdapterWithDefaults(adapterConfig(cfg, sharedSecret), logger)
	if err != nil {
		logger.Fatal("Failed to initialize GlobalOne adapter", zap.Error(err))
	}

	if args.JSONFile != "" {
		if err := args.mergeJSONFile(args.JSONFile); err != nil {
			logger.Fatal("Failed to read request file", zap.String("file", args.JSONFile), zap.Error(err))
		}
	}

	cli := &GlobalOneCLI{adapter: adapter, out: os.Stdout}
	if err := cli.run(ctx, *action, args); err != nil {
		logger.Error("GlobalOne action failed",
			zap.String("action", *action),
			zap.Error(err),
		)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: globalone -action=<action> [options]")
	fmt.Println("Actions:")
	fmt.Println("  register       - Store a card and print its CARDREFERENCE")
	fmt.Println("  unregister     - Remove a stored card")
	fmt.Println("  pay            - Charge a card")
	fmt.Println("  pay-registered - Charge a stored card")
	fmt.Println("  refund         - Refund a payment")
	fmt.Println()
	flag.PrintDefaults()
}

// adapterConfig maps environment configuration onto the adapter configuration
func adapterConfig(cfg *config.Config, sharedSecret string) globalone.Config {
	return globalone.Config{
		Credentials: globalone.Credentials{
			TerminalID:    cfg.GlobalOne.TerminalID,
			SharedSecret:  sharedSecret,
			MerchantCode:  cfg.GlobalOne.MerchantCode,
			MultiCurrency: cfg.GlobalOne.MultiCurrency,
		},
		URL:     cfg.GlobalOne.URL,
		Port:    cfg.GlobalOne.Port,
		Timeout: cfg.GlobalOne.RequestTimeout(),
	}
}

// initLogger initializes the logger
func initLogger(cfg config.LoggerConfig) *zap.Logger {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	// stdout carries the result document
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
