package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-tiny-raycaster/pkg/renderer"
	"github.com/df07/go-tiny-raycaster/web/server"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is not an error
	_ = godotenv.Load()

	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, renderer.NewDefaultLogger())

	log.Printf("Tiny Ray Caster Web Server")
	log.Printf("Stream a render from ws://localhost:%d/api/stream", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
