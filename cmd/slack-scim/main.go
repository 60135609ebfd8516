package main

import (
	"os"

	"github.com/openkcm/slack-scim/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
