package main

import (
	"log"

	"github.com/MrSnakeDoc/hostdash/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ hostdash failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ hostdash stopped with error: %v", err)
	}
}
