package main

import "github.com/ethanbaker/repogen/cmd/repogen/cmd"

func main() {
	cmd.Execute()
}
