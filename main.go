package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "seed":
			runSeed()
			return
		case "rebuild-index":
			runRebuildIndex()
			return
		case "send-newsletter":
			runSendNewsletter()
			return
		case "help":
			fmt.Println("Usage: jersey-store [command]")
			fmt.Println("")
			fmt.Println("Commands:")
			fmt.Println("  (no args)        Start the HTTP/Connect server")
			fmt.Println("  seed             Seed the demo catalog into Postgres")
			fmt.Println("  rebuild-index    Rebuild the Meilisearch product index")
			fmt.Println("  send-newsletter  Send a newsletter: jersey-store send-newsletter \"subject\" \"message\" [style]")
			fmt.Println("  help             Show this help message")
			return
		}
	}
	runServer()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func newServer() (*server, func()) {
	db, err := connectDB()
	if err != nil {
		log.Printf("Warning: failed to connect to database: %v", err)
		db = nil
	} else {
		log.Println("Database connected")
	}

	events := newEventPublisher()
	s := &server{
		db:       db,
		cart:     newCartStore(),
		mailer:   newMailerFromEnv(),
		events:   events,
		search:   newMeiliClient(),
		siteURL:  getEnv("SITE_URL", "http://localhost:3000"),
		cloudURL: os.Getenv("CLOUDINARY_URL"),
	}
	cleanup := func() {
		if db != nil {
			db.Close()
		}
		events.Close()
	}
	return s, cleanup
}

func runServer() {
	s, cleanup := newServer()
	defer cleanup()

	if s.db != nil {
		if err := seedCatalog(context.Background(), s.db); err != nil {
			log.Printf("Warning: seed catalog: %v", err)
		}
	}

	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	s.RegisterRPC(mux)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Connect-Protocol-Version", "X-Account-ID"},
		ExposedHeaders:   []string{"Grpc-Status", "Grpc-Message"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	h2cHandler := h2c.NewHandler(corsHandler.Handler(mux), &http2.Server{})

	addr := ":" + getEnv("PORT", "8080")
	log.Printf("jersey-store listening on %s", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}

func runSeed() {
	db, err := connectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := seedCatalog(context.Background(), db); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	fmt.Println("Catalog seeded")
}

func runRebuildIndex() {
	db, err := connectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	indexed, err := newMeiliClient().RebuildIndex(context.Background(), db)
	if err != nil {
		log.Fatalf("Rebuild failed: %v", err)
	}
	fmt.Printf("Index rebuild complete: %d products indexed\n", indexed)
}

func runSendNewsletter() {
	if len(os.Args) < 4 {
		log.Fatal("usage: jersey-store send-newsletter \"subject\" \"message\" [style]")
	}
	in := NewsletterInput{Subject: os.Args[2], Message: os.Args[3], Style: "classic"}
	if len(os.Args) > 4 {
		in.Style = os.Args[4]
	}

	db, err := connectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	result, err := SendNewsletter(context.Background(), db, newMailerFromEnv(), getEnv("SITE_URL", "http://localhost:3000"), in)
	if err != nil {
		log.Fatalf("Newsletter send failed: %v", err)
	}
	fmt.Printf("Newsletter sent: %d ok, %d failed of %d\n", result.Sent, result.Failed, result.Total)
	for _, d := range result.Details {
		fmt.Println("  " + d)
	}
}
