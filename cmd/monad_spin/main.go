package main

import (
	"log"

	"monad_spin/internal/app"
)

func main() {
	if err := app.NewApp().Run(); err != nil {
		log.Fatalf("monad_spin: %v", err)
	}
}
