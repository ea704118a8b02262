package main

import "github.com/leapscan/leap-events/internal/cli"

func main() {
	cli.Execute()
}
