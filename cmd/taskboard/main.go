package main

import (
	"github.com/eleven-am/taskboard/cmd"
)

func main() {
	cmd.Execute()
}
