package main

import "github.com/graybeam/testpolicy/cmd"

func main() {
	cmd.Execute()
}
