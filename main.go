package main

import (
	"os"

	"actorc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
