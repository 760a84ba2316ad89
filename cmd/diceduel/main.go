package main

import "github.com/diceproof/diceduel/internal/cli"

func main() {
	cli.Execute()
}
