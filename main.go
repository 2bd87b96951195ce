package main

import "github.com/Tiliavir/autoprep/cmd"

func main() {
	cmd.Execute()
}
