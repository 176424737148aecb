package main

import "github.com/NVIDIA/confmodel/pkg/cli"

func main() {
	cli.Execute()
}
