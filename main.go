package main

import "hzfm/cmd"

func main() {
	cmd.Execute()
}
