package main

import "github.com/tanpawarit/krishi-mitra/cli"

func main() {
	cli.Execute()
}
