package main

import "github.com/keykomi/webblog/cmd"

func main() {
	cmd.Execute()
}
