package main

import "loyaltyadmin/internal/cli"

func main() {
	cli.Execute()
}
