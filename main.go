package main

import "github.com/ropereralk/enterprise-directory/cmd"

func main() {
	cmd.Execute()
}
