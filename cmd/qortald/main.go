package main

import "github.com/LeJamon/goQortald/internal/cli"

func main() {
	cli.Execute()
}
