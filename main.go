package main

import "github.com/fulmenhq/exportsync/cmd"

func main() {
	cmd.Execute()
}
