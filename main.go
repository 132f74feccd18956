package main

import "github.com/danbikim/askdb/cmd"

func main() {
	cmd.Execute()
}
