package main

import "github.com/arloliu/stringwrite/cmd/stringwrite/cmd"

func main() {
	cmd.Execute()
}
