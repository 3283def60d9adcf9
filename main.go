package main

import "walletscan/cmd"

func main() {
	cmd.Execute()
}
