// Package main is the entry point for the pbtscan CLI.
package main

import "pbtscan.dev/pkg/pbtscan/cmd"

func main() {
	cmd.Execute()
}
