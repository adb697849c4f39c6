package main

import "github.com/ZacxDev/nest/cmd"

func main() {
	cmd.Execute()
}
