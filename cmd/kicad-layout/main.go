package main

import "github.com/mcbridejc/kicad-component-layout/cmd/kicad-layout/cmd"

func main() {
	cmd.Execute()
}
