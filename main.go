package main

import "github.com/harukei/github-digest/cmd"

func main() {
	cmd.Execute()
}
