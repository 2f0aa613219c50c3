package main

import "github.com/josephlewis42/tosh/cmd"

func main() {
	cmd.Execute()
}
