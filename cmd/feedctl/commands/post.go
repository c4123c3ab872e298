package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	postContent string
	postImages  []string
	postVideos  []string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Publish a post with attached media",
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := newClient().CreatePost(postContent, postImages, postVideos)
		if err != nil {
			return err
		}
		fmt.Printf("Created post %d\n", created.ID)
		return nil
	},
}

var deletePostCmd = &cobra.Command{
	Use:   "delete <postID>",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post ID: %s", args[0])
		}
		if _, err := newClient().DeletePost(uint(id)); err != nil {
			return err
		}
		fmt.Printf("Deleted post %d\n", id)
		return nil
	},
}

func init() {
	postCmd.Flags().StringVarP(&postContent, "content", "c", "", "Post content (required)")
	postCmd.Flags().StringSliceVarP(&postImages, "image", "i", nil, "Image file to attach (repeatable, max 5)")
	postCmd.Flags().StringSliceVar(&postVideos, "video", nil, "Video file to attach (repeatable, max 2)")
	postCmd.MarkFlagRequired("content")

	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(deletePostCmd)
}
