package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/keykomi/webblog/pkg/client"
	"github.com/keykomi/webblog/pkg/draft"
	"github.com/keykomi/webblog/pkg/envs"
	"github.com/keykomi/webblog/pkg/kvstore"
)

func newDraftManager() *draft.Manager {
	return draft.NewManager(kvstore.NewFileStore(envs.StateBaseDir))
}

// NewDraftCmd ...
func NewDraftCmd() *cobra.Command {
	draftCmd := cobra.Command{
		Use:   "draft",
		Short: "Manage the local article draft (single slot).",
	}

	draftCmd.AddCommand(
		newDraftSaveCmd(),
		newDraftShowCmd(),
		newDraftClearCmd(),
		newDraftPublishCmd(),
	)
	return &draftCmd
}

func newDraftSaveCmd() *cobra.Command {
	var title, content, contentFile, imageURL string
	var tags []string

	saveCmd := cobra.Command{
		Use:   "save",
		Short: "Save the draft, overwriting any previous one.",
		Run: func(cmd *cobra.Command, args []string) {
			if contentFile != "" {
				data, err := os.ReadFile(contentFile)
				if err != nil {
					color.Red("failed to read content file: %s", err)
					os.Exit(1)
				}
				content = string(data)
			}

			if strings.TrimSpace(title+content+imageURL+strings.Join(tags, "")) == "" {
				fmt.Println("draft is empty, nothing saved")
				return
			}

			d := draft.Draft{Title: title, Content: content, ImageURL: imageURL, Tags: tags}
			if err := newDraftManager().Save(d); err != nil {
				color.Red("failed to save draft: %s", err)
				os.Exit(1)
			}
			color.Green("draft saved")
		},
	}

	saveCmd.Flags().StringVar(&title, "title", "", "article title")
	saveCmd.Flags().StringVar(&content, "content", "", "article markdown content")
	saveCmd.Flags().StringVar(&contentFile, "content-file", "", "read content from a markdown file")
	saveCmd.Flags().StringVar(&imageURL, "image-url", "", "article cover image url")
	saveCmd.Flags().StringSliceVar(&tags, "tags", nil, "article tags (comma separated)")

	return &saveCmd
}

func newDraftShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current draft.",
		Run: func(cmd *cobra.Command, args []string) {
			d, ok := newDraftManager().Load()
			if !ok {
				fmt.Println("no draft found")
				return
			}

			fmt.Printf("Title:    %s\n", d.Title)
			fmt.Printf("Tags:     %s\n", strings.Join(d.Tags, ", "))
			fmt.Printf("ImageURL: %s\n", d.ImageURL)
			fmt.Printf("SavedAt:  %s\n", d.SavedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("\n%s\n", d.Content)
		},
	}
}

func newDraftClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard the current draft.",
		Run: func(cmd *cobra.Command, args []string) {
			if err := newDraftManager().Clear(); err != nil {
				color.Red("failed to clear draft: %s", err)
				os.Exit(1)
			}
			color.Green("draft cleared")
		},
	}
}

func newDraftPublishCmd() *cobra.Command {
	var server string

	publishCmd := cobra.Command{
		Use:   "publish",
		Short: "Publish the current draft as an article, then discard it.",
		Run: func(cmd *cobra.Command, args []string) {
			mgr := newDraftManager()
			d, ok := mgr.Load()
			if !ok {
				color.Red("no draft to publish")
				os.Exit(1)
			}
			if !draft.IsReadyToPublish(*d) {
				color.Red("draft is not ready to publish: title and content are required")
				os.Exit(1)
			}

			cli := client.New(server, kvstore.NewFileStore(envs.StateBaseDir))
			article, err := cli.CreateArticle(context.Background(), client.CreateArticleRequest{
				Title:    d.Title,
				Content:  d.Content,
				ImageURL: d.ImageURL,
				Tags:     d.Tags,
			})
			if err != nil {
				color.Red("failed to publish article: %s", err)
				os.Exit(1)
			}

			// 发布成功后丢弃草稿
			if err = mgr.Clear(); err != nil {
				color.Yellow("article published but failed to clear draft: %s", err)
			}
			color.Green("article #%d published: %s", article.ID, article.Title)
		},
	}

	publishCmd.Flags().StringVar(&server, "server", defaultServerURL(), "blog server base url")

	return &publishCmd
}

func init() {
	rootCmd.AddCommand(NewDraftCmd())
}
