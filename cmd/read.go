package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/keykomi/webblog/pkg/client"
	"github.com/keykomi/webblog/pkg/envs"
	"github.com/keykomi/webblog/pkg/kvstore"
	"github.com/keykomi/webblog/pkg/readgate"
)

// NewReadCmd ...
func NewReadCmd() *cobra.Command {
	var server string
	var dwell time.Duration

	readCmd := cobra.Command{
		Use:   "read <article-id>",
		Short: "Read an article; counts as a read after scrolling to the end and dwelling.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			articleID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || articleID <= 0 {
				color.Red("invalid article id: %s", args[0])
				os.Exit(1)
			}

			ctx := context.Background()
			cli := client.New(server, kvstore.NewFileStore(envs.StateBaseDir))

			article, err := cli.GetArticle(ctx, articleID)
			if err != nil {
				color.Red("failed to fetch article: %s", err)
				os.Exit(1)
			}

			fmt.Printf("# %s\n", article.Title)
			fmt.Printf("by %s · %s · %d reads\n", article.Author, article.PublishedAt, article.ReadCount)
			if len(article.Tags) != 0 {
				fmt.Printf("tags: %s\n", strings.Join(article.Tags, ", "))
			}
			fmt.Printf("\n%s\n", article.Content)

			var newCount int64
			gate := readgate.New(kvstore.NewMemStore(), args[0], func() error {
				newCount, err = cli.IncrementRead(ctx, articleID)
				return err
			})

			// 输出完成即视为滚动到底部,之后等待停留时长
			if err = gate.MarkScrolledToEnd(); err != nil {
				color.Red("failed to record read: %s", err)
				os.Exit(1)
			}
			if err = gate.WaitDwell(ctx, dwell); err != nil {
				color.Red("failed to record read: %s", err)
				os.Exit(1)
			}

			if gate.Fired() {
				color.Green("read recorded, article now has %d reads", newCount)
			}
		},
	}

	readCmd.Flags().StringVar(&server, "server", defaultServerURL(), "blog server base url")
	readCmd.Flags().DurationVar(&dwell, "dwell", 60*time.Second, "time to dwell before the read counts")

	return &readCmd
}

func init() {
	rootCmd.AddCommand(NewReadCmd())
}
