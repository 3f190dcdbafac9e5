package main

import "github.com/example/desk-scheduler/internal/interfaces/cli"

func main() {
	cli.Execute()
}
