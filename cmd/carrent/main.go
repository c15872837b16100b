/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/openfleet/carrent/cmd/carrent/cmd"

func main() {
	cmd.Execute()
}
