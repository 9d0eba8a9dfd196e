package main

import "github.com/zeusmes/sapbridge/cmd"

func main() {
	cmd.Execute()
}
