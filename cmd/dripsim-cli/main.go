package main

import (
	"github.com/joho/godotenv"

	"dripsim/cmd/dripsim-cli/cmd"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}
