package main

import "github.com/keurnel/x64emit/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
