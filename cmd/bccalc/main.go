package main

import "github.com/govalues/bcnum/internal/cli"

func main() {
	cli.Execute()
}
