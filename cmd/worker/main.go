package main

import "github.com/rupiksha/go-ppob-transaction/cmd/worker/cmd"

func main() {
	cmd.Execute()
}
