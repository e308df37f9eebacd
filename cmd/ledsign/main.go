package main

import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/matjam/ledsign/internal/cli"
)

func main() {
	cli.Execute()
}
