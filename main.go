// Package main is the entry point for the phototools CLI.
package main

import "phototools.dev/pkg/phototools/cmd"

func main() {
	cmd.Execute()
}
