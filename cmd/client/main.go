package main

import "admingrid/cmd/client/cmd"

func main() {
	cmd.Execute()
}
