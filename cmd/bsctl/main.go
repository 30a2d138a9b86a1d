package main

import "github.com/mcoot/battleship/internal/cli"

func main() {
	cli.Execute()
}
