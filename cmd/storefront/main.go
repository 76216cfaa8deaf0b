package main

import (
	"github.com/joho/godotenv"

	"storefront/cmd/storefront/commands"
)

func main() {
	// Optional .env for STOREFRONT_API_URL and friends.
	_ = godotenv.Load()

	commands.Execute()
}
