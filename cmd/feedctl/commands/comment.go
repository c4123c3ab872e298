package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment <postID> <text>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post ID: %s", args[0])
		}
		post, err := newClient().AddComment(uint(id), args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Comment added, post %d now has %d comments\n", post.ID, len(post.Comments))
		return nil
	},
}

var uncommentCmd = &cobra.Command{
	Use:   "uncomment <postID> <commentID>",
	Short: "Delete one of your comments from a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post ID: %s", args[0])
		}
		if _, err := newClient().DeleteComment(uint(id), args[1]); err != nil {
			return err
		}
		fmt.Println("Comment deleted")
		return nil
	},
}

var likeCmd = &cobra.Command{
	Use:   "like <postID>",
	Short: "Toggle your like on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post ID: %s", args[0])
		}
		post, err := newClient().ToggleLike(uint(id))
		if err != nil {
			return err
		}
		fmt.Printf("Post %d now has %d likes\n", post.ID, len(post.Likes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(uncommentCmd)
	rootCmd.AddCommand(likeCmd)
}
