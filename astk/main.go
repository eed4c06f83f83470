// Package main is the entry point of the astk command.
package main

import "github.com/sarchlab/astk/astk/cmd"

func main() {
	cmd.Execute()
}
