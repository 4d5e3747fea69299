package main

import "github.com/andrewibrah/riflett-intent/internal/cmd"

func main() {
	cmd.Execute()
}
