package main

import "econfeed/cmd"

func main() {
	cmd.Execute()
}
