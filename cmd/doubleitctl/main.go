package main

import (
	"os"

	"doubleit/internal/ctl"
)

func main() { os.Exit(ctl.Main()) }
