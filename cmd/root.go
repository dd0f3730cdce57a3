/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "makan-forms",
	Short: "Productivity tracking API server",
	Long: `Makan Forms is a REST API server for geospatial production tracking.
Editors submit daily productivity forms against map sheets and layers,
supervisors review them, and dashboards aggregate progress per layer and product.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// GetRootCmd 返回根命令 (用于测试)
func GetRootCmd() *cobra.Command {
	return rootCmd
}
