package main

import "github.com/melodypapa/autosar-pdf/internal/cli"

func main() {
	cli.Execute()
}
