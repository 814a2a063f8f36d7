package main

import "github.com/bedekelly/tinybuf/cmd/tinybuf/cmd"

func main() {
	cmd.Execute()
}
