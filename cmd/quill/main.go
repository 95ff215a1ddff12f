package main

import (
	"log"

	"github.com/MrSnakeDoc/quill/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ quill failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ quill stopped with error: %v", err)
	}
}
