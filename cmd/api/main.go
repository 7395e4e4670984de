package main

import "github.com/yigit/alumniportal/cmd/api/cmd"

func main() {
	cmd.Execute()
}
