package main

import "budgetdash/internal/cli"

func main() {
	cli.Execute()
}
