package main

import "github.com/kamusis/skillscope/cmd"

func main() {
	cmd.Execute()
}
