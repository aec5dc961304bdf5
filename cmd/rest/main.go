package main

import (
	"context"
	"log"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/bootstrap"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/config"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/server"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 3. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
