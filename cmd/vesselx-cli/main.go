package main

import "vesselx/cmd/vesselx-cli/cmd"

func main() {
	cmd.Execute()
}
