// Package main is the entry point for the manimcells CLI.
package main

import "manimcells.dev/pkg/manimcells/cmd"

func main() {
	cmd.Execute()
}
