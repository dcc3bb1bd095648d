package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/docai-showcase/docai/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; the endpoint and API key may also come from the shell.
	_ = godotenv.Load()

	if err := fang.Execute(context.Background(), cmd.RootCmd); err != nil {
		os.Exit(1)
	}
}
