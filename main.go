package main

import "github.com/alexiusacademia/rcflex/cmd"

func main() {
	cmd.Execute()
}
