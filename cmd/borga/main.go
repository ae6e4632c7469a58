package main

import "github.com/borga-dev/borga/internal/cli"

func main() {
	cli.Execute()
}
