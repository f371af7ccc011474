package main

import "history/cmd/server/cmd"

func main() {
	cmd.Execute()
}
