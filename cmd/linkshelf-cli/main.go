package main

import "linkshelf/cmd/linkshelf-cli/cmd"

func main() {
	cmd.Execute()
}
