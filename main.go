/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package main

import "github.com/Riyan-Almaiman/makan-forms-updated-sub000/cmd"

func main() {
	cmd.Execute()
}
