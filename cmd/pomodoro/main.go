package main

import (
	"os"

	"github.com/Testeur1337/myPomodoro/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
