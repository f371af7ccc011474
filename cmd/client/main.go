package main

import "history/cmd/client/cmd"

func main() {
	cmd.Execute()
}
