package main

import "github.com/gaphound/gaphound/cmd"

func main() {
	cmd.Execute()
}
