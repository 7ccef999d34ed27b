package main

import (
	"log"

	"github.com/basegeek/startpage/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("startpage failed to start: %v", err)
	}
}
