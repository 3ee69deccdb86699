package main

import "github.com/venuesync/venuesync/cmd"

func main() {
	cmd.Execute()
}
