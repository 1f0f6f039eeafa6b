package main

import "github.com/yodaproject/yoda/cmd/yoda/cmd"

func main() {
	cmd.Execute()
}
