// Command debug-order fetches one order and prints every field that may
// hold the carrier tracking number.
//
//	debug-order <orderNumber> <email>
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"order-tracker/internal/config"
	"order-tracker/internal/inspect"
	"order-tracker/internal/logger"
	"order-tracker/internal/logger/sl"
	"order-tracker/internal/shopify"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: debug-order <orderNumber> <email>")
		fmt.Fprintln(os.Stderr, "example: debug-order 4715ECOMM customer@example.com")
		os.Exit(2)
	}
	orderNumber, email := os.Args[1], os.Args[2]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()
	cfg := config.LoadConfig()
	log := logger.Setup(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", sl.Err(err))
		os.Exit(1)
	}

	fmt.Printf("Domain: %s\nAPI version: %s\nToken: %s\n\n",
		cfg.Shopify.Domain, cfg.Shopify.APIVersion, cfg.Shopify.MaskedToken())
	fmt.Printf("Looking up order %s for %s\n\n", orderNumber, email)

	client := shopify.NewClient(cfg.Shopify)
	orders, err := client.FetchCandidateOrders(ctx, email, orderNumber)
	if err != nil {
		var rejected *shopify.RejectedError
		if errors.As(err, &rejected) {
			fmt.Fprintf(os.Stderr, "status: %d (%s)\nbody: %s\n", rejected.StatusCode, rejected.Reason(), rejected.Body)
		}
		log.Error("fetch order", sl.Err(err))
		os.Exit(1)
	}
	if len(orders) == 0 {
		fmt.Println("order not found")
		os.Exit(1)
	}

	report := inspect.Inspect(orders[0])
	report.Print(os.Stdout)

	path, err := inspect.SaveRaw(".", orders[0])
	if err != nil {
		log.Error("save order json", sl.Err(err))
		os.Exit(1)
	}
	fmt.Printf("\nFull order JSON saved to %s\n", path)
}
