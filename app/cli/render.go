package cli

import (
	"fmt"

	"blogclient/app/models"
)

const previewLength = 150

func printIdentity(identity *models.Identity) {
	fmt.Printf("#%d %s <%s>\n", identity.ID, identity.Name, identity.Email)
	if !identity.CreatedAt.IsZero() {
		fmt.Printf("Member since %s\n", identity.CreatedAt.Format("2006-01-02"))
	}
}

func printPosts(posts []*models.Post) {
	if len(posts) == 0 {
		fmt.Println("No posts found. Be the first to create one!")
		return
	}
	for _, post := range posts {
		fmt.Printf("#%d  %s\n", post.ID, post.Title)
		fmt.Printf("    %s\n", post.Preview(previewLength))
	}
}

func printPost(post *models.Post, comments []*models.Comment) {
	fmt.Printf("#%d  %s\n", post.ID, post.Title)
	if !post.CreatedAt.IsZero() {
		fmt.Printf("by user %d on %s\n", post.UserID, post.CreatedAt.Format("2006-01-02"))
	}
	fmt.Println()
	fmt.Println(post.Body)
	fmt.Println()
	fmt.Printf("Comments (%d):\n", len(comments))
	printComments(comments)
}

func printComments(comments []*models.Comment) {
	if len(comments) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, comment := range comments {
		fmt.Printf("  #%d on post %d by user %d: %s\n", comment.ID, comment.PostID, comment.UserID, comment.Body)
	}
}
