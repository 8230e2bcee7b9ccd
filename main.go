package main

import "github.com/davidbard1226/amazon-buybox-tracker/cmd"

func main() {
	cmd.Execute()
}
