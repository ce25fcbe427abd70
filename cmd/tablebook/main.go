package main

import "github.com/example/table-reservations/cmd"

func main() {
	cmd.Execute()
}
