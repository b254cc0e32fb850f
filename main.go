package main

import "breakcheck/cmd"

func main() {
	cmd.Execute()
}
