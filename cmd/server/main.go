/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the POS engine server. Handles configuration,
  dependency injection, optional seeding, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Initialize SQLite store
  3. Optionally seed a first admin and sample catalog
  4. Create API handler and router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: pos.db)
           Use ":memory:" for an in-memory database
  -seed    Insert a default admin and sample products when the
           employees table is empty

ENVIRONMENT:
  JWT_SECRET  Token signing secret. A development default is used when
              unset; set a real value in production.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # First run, with seeding
  ./server -db="./data/pos.db" -seed

  # Run with in-memory database
  ./server -db=":memory:" -seed

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/ampos/pos-engine/api"
	"github.com/ampos/pos-engine/auth"
	"github.com/ampos/pos-engine/pos"
	"github.com/ampos/pos-engine/store/sqlite"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "pos.db", "SQLite database path")
	seed := flag.Bool("seed", false, "seed a default admin and sample products")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		log.Println("Warning: JWT_SECRET not set, using development default")
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	if *seed {
		if err := seedDatabase(context.Background(), store); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize handler and router
	tokens := auth.NewTokenManager(secret, 24*time.Hour)
	handler := api.NewHandler(store, tokens, nil)
	router := api.NewRouter(handler, tokens)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// seedDatabase inserts a first admin and a small sample catalog when the
// employees table is empty. Idempotent: a populated database is left alone.
func seedDatabase(ctx context.Context, store *sqlite.Store) error {
	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return err
	}
	if len(employees) > 0 {
		log.Println("Seed skipped: employees already exist")
		return nil
	}

	hash, err := auth.HashPassword("0000")
	if err != nil {
		return err
	}
	admin := &pos.Employee{
		Name:           "Administrator",
		EmployeeNumber: "0000",
		PasswordHash:   hash,
		Role:           pos.RoleAdmin,
	}
	if err := store.CreateEmployee(ctx, admin); err != nil {
		return err
	}
	log.Println("Seeded admin employee 0000 (password 0000) - change it after first login")

	hash, err = auth.HashPassword("1111")
	if err != nil {
		return err
	}
	cashier := &pos.Employee{
		Name:           "Cashier",
		EmployeeNumber: "1111",
		PasswordHash:   hash,
		Role:           pos.RoleCashier,
	}
	if err := store.CreateEmployee(ctx, cashier); err != nil {
		return err
	}

	samples := []pos.Product{
		{Name: "Espresso", Price: decimal.NewFromFloat(2.50), Category: "drinks", SortOrder: 1},
		{Name: "Cappuccino", Price: decimal.NewFromFloat(3.50), Category: "drinks", SortOrder: 2},
		{Name: "Croissant", Price: decimal.NewFromFloat(2.00), Category: "food", SortOrder: 3},
		{Name: "Club Sandwich", Price: decimal.NewFromFloat(6.50), Category: "food", SortOrder: 4},
	}
	for i := range samples {
		if err := store.CreateProduct(ctx, &samples[i]); err != nil {
			return err
		}
	}
	log.Printf("Seeded %d sample products", len(samples))
	return nil
}
