// Package main provides a root-level entry point for apexsim, a
// cycle-accurate functional simulator of a pipelined, out-of-order,
// register-renamed integer machine.
//
// For the full CLI, use: go run ./cmd/apexsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("apexsim - out-of-order integer pipeline simulator")
	fmt.Println("")
	fmt.Println("Usage: apexsim <input_file> <mode> <num_cycles>")
	fmt.Println("       apexsim <input_file>   (interactive mode)")
	fmt.Println("")
	fmt.Println("mode is simulate or display.")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/apexsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/apexsim' instead.")
	}
}
