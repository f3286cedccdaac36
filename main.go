package main

import "github.com/VoxDroid/pkgrel/cmd"

func main() {
	cmd.Execute()
}
