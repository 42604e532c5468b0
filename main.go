package main

import "github.com/atikulmunna/squid-search/internal/cmd"

func main() {
	cmd.Execute()
}
