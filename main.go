package main

import "github.com/inovacc/nofan/cmd"

func main() {
	cmd.Execute()
}
