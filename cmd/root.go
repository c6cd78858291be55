package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "webblog",
	Short: "webblog is KeykoMI's personal blog.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("welcome to use webblog, use `webblog -h` for help")
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
