package main

import "github.com/pfrederiksen/band-recaps/internal/cli"

func main() {
	cli.Execute()
}
