package main

import "github.com/gadgetfs/gadget-client/cmd"

func main() {
	cmd.Execute()
}
