package main

import "github.com/chazu/kerf/cmd/kerf/cmd"

func main() {
	cmd.Execute()
}
