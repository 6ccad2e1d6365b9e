package main

import "github.com/abdul-hamid-achik/themer/cmd/themer/commands"

func main() {
	commands.Execute()
}
