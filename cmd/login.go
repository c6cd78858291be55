package cmd

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/keykomi/webblog/pkg/client"
	"github.com/keykomi/webblog/pkg/envs"
	"github.com/keykomi/webblog/pkg/kvstore"
)

// NewLoginCmd ...
func NewLoginCmd() *cobra.Command {
	var server, username, password string

	loginCmd := cobra.Command{
		Use:   "login",
		Short: "Log in to the blog and store the access token locally.",
		Run: func(cmd *cobra.Command, args []string) {
			cli := client.New(server, kvstore.NewFileStore(envs.StateBaseDir))

			result, err := cli.Login(context.Background(), username, password)
			if err != nil {
				color.Red("login failed: %s", err)
				os.Exit(1)
			}
			color.Green("logged in as %s <%s>, token stored in %s", result.Username, result.Mail, envs.StateBaseDir)
		},
	}

	loginCmd.Flags().StringVar(&server, "server", defaultServerURL(), "blog server base url")
	loginCmd.Flags().StringVarP(&username, "username", "u", "", "author username or mail")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "author password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")

	return &loginCmd
}

func defaultServerURL() string {
	return "http://localhost:" + envs.ServerPort
}

func init() {
	rootCmd.AddCommand(NewLoginCmd())
}
