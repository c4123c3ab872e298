package main

import "github.com/wavefeed/wavefeed/cmd/feedctl/commands"

func main() {
	commands.Execute()
}
