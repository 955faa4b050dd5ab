package main

import (
	"covidtrack-backend/cmd/covidtrack-cli/cmd"
)

func main() {
	cmd.Execute()
}
