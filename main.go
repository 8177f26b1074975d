package main

import "github.com/KaramelBytes/carloom/cmd"

func main() {
	cmd.Execute()
}
