package main

import "github.com/mcoot/findingfriends/internal/cli"

func main() {
	cli.Execute()
}
