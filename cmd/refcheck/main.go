package main

import "refcheck/cmd"

func main() {
	cmd.Execute()
}
