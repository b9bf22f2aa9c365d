// Package main is the entry point for the depmap CLI.
package main

import "depmap.dev/pkg/depmap/cmd"

func main() {
	cmd.Execute()
}
