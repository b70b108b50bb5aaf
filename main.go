package main

import (
	_ "go.uber.org/automaxprocs"

	"design-folio/cmd"
)

func main() {
	cmd.Start()
}
