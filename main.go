package main

import "github.com/ojiudezue/frigate-config-builder/cmd"

func main() {
	cmd.Execute()
}
