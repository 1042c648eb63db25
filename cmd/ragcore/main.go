package main

import (
	"github.com/joho/godotenv"

	"ragcore/internal/cli"
)

func main() {
	// API keys may live in a local .env file.
	_ = godotenv.Load()

	cli.Execute()
}
