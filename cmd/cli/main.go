package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jawa0111/horeo-foodapp/internal/store"
)

// Small operator tool for poking the platform API the storefront talks to.
func main() {
	healthCmd := flag.NewFlagSet("health", flag.ExitOnError)
	healthBase := healthCmd.String("api", apiBase(), "Platform API base URL")

	orderCmd := flag.NewFlagSet("order", flag.ExitOnError)
	orderBase := orderCmd.String("api", apiBase(), "Platform API base URL")
	orderID := orderCmd.String("id", "", "Order id to look up")

	if len(os.Args) < 2 {
		fmt.Println("expected 'health' or 'order' subcommand")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "health":
		healthCmd.Parse(os.Args[2:])
		client := store.NewClient(*healthBase)
		if err := client.Health(ctx); err != nil {
			log.Fatalf("Platform API unhealthy: %v", err)
		}
		fmt.Println("Platform API is healthy.")
	case "order":
		orderCmd.Parse(os.Args[2:])
		if *orderID == "" {
			fmt.Println("order id is required")
			orderCmd.PrintDefaults()
			os.Exit(1)
		}
		client := store.NewClient(*orderBase)
		order, err := client.OrderByID(ctx, *orderID)
		if err != nil {
			log.Fatalf("Failed to fetch order: %v", err)
		}
		fmt.Printf("Order %s\n", order.OrderID)
		fmt.Printf("  delivery:  %s\n", order.DeliveryTime)
		fmt.Printf("  payment:   %s (%s)\n", order.PaymentMethod, order.PaymentStatus)
		fmt.Printf("  recipient: %s %s (%s%s)\n", order.Recipient.FirstName, order.Recipient.LastName, order.Recipient.Code, order.Recipient.Mobile)
		fmt.Printf("  address:   %s, %s\n", order.Address.Details, order.Address.Location)
	default:
		fmt.Println("expected 'health' or 'order' subcommand")
		os.Exit(1)
	}
}

func apiBase() string {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:5000/api"
}
