package main

import (
	cmd "github.com/rohmanhakim/termdeck/internal/cli"
)

func main() {
	cmd.Execute()
}
