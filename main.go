package main

import "fastcat.org/go/entab/cmd"

func main() {
	cmd.Main()
}
