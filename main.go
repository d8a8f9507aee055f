package main

import "uplog/cmd"

func main() {
	cmd.Execute()
}
