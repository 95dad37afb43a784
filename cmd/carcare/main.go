package main

import (
	"github.com/momeni/smartcar-care/cmd/carcare/command"
)

func main() {
	command.Execute()
}
