package main

import "github.com/ethanolivertroy/porter/cmd"

func main() {
	cmd.Execute()
}
