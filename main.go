package main

import (
	"github.com/joho/godotenv"

	"github.com/nhle/tgift/cmd"
)

func main() {
	// A .env file is optional; real environment variables still apply.
	_ = godotenv.Load()

	cmd.Execute()
}
