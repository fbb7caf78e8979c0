package main

import "github.com/user/secureflow/cmd"

func main() {
	cmd.Execute()
}
