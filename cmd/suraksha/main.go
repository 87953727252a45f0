package main

import "github.com/mamadbah2/suraksha/internal/cli"

func main() {
	cli.Execute()
}
