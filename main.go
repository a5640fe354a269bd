package main

import "github.com/AzielCF/az-rules/cmd"

func main() {
	cmd.Execute()
}
