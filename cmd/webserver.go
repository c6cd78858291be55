package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/keykomi/webblog/pkg/auth"
	"github.com/keykomi/webblog/pkg/envs"
	"github.com/keykomi/webblog/pkg/infras/database"
	"github.com/keykomi/webblog/pkg/logging"
	"github.com/keykomi/webblog/pkg/router"
	"github.com/keykomi/webblog/pkg/upload"
)

var webServerCmd = &cobra.Command{
	Use:   "webserver",
	Short: "webserver start http server.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		logging.InitLogger()
		database.InitDBClient(ctx)

		gin.SetMode(envs.GinRunMode)

		issuer := auth.NewTokenIssuer(envs.JWTSigningKey, envs.JWTExpiration)
		uploadSvc := upload.NewService(envs.ImageUploadEndpoint, envs.ImageUploadClientID)

		color.Green("Starting server at http://0.0.0.0:%s/", envs.ServerPort)
		router.Run(router.New(database.DB(), issuer, uploadSvc))
	},
}

func init() {
	rootCmd.AddCommand(webServerCmd)
}
