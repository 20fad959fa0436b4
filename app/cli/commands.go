package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"blogclient/app/models"
	"blogclient/app/session"
)

// HandleCommand runs one client subcommand against the server at baseURL.
func HandleCommand(baseURL string, args []string) {
	if len(args) < 1 {
		PrintHelp()
		os.Exit(1)
	}

	app, err := NewApp(baseURL)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	app.Start(ctx)

	cmdErr := app.run(ctx, args[0], args[1:])

	if err := app.Close(); err != nil {
		fmt.Println("Warning: could not save session:", err)
	}
	if cmdErr != nil {
		fmt.Println("Error:", cmdErr)
		os.Exit(1)
	}
}

func (a *App) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.loginCmd(ctx, args)
	case "register":
		return a.registerCmd(ctx, args)
	case "logout":
		return a.logoutCmd(ctx)
	case "whoami":
		return a.whoamiCmd()
	case "posts":
		return a.postsCmd(ctx)
	case "post":
		return a.postCmd(ctx, args)
	case "publish":
		return a.publishCmd(ctx, args)
	case "edit":
		return a.editCmd(ctx, args)
	case "unpublish":
		return a.unpublishCmd(ctx, args)
	case "mine":
		return a.mineCmd(ctx)
	case "comments":
		return a.commentsCmd(ctx, args)
	case "comment":
		return a.commentCmd(ctx, args)
	case "uncomment":
		return a.uncommentCmd(ctx, args)
	case "help":
		PrintHelp()
		return nil
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		PrintHelp()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// PrintHelp prints usage for the client commands.
func PrintHelp() {
	helpText := `Usage: blogclient <command> [options]

Commands:
  register <name> <email> <password>   Create an account and log in.
  login <email> <password>             Log in.
  logout                               Log out.
  whoami                               Show the current identity.

  posts                                List all posts.
  post <id>                            Show a post and its comments.
  publish <title> <body>               Create a post.
  edit <id> [-title t] [-body b]       Update a post.
  unpublish <id>                       Delete a post.
  mine                                 List your posts.

  comments [post-id]                   List comments, optionally for one post.
  comment <post-id> <body>             Comment on a post.
  uncomment <id>                       Delete a comment.

  serve                                Run the local development server.
  version                              Show version information.
  help                                 Display this help message.
`
	fmt.Println(helpText)
}

func (a *App) loginCmd(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}

	res := a.session.Login(ctx, args[0], args[1])
	if !res.Success {
		return fmt.Errorf("login failed: %v", res.Err)
	}
	fmt.Printf("Logged in as %s\n", a.session.Current().Name)
	return nil
}

func (a *App) registerCmd(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: register <name> <email> <password>")
	}

	reg := models.Registration{
		Name:                 args[0],
		Email:                args[1],
		Password:             args[2],
		PasswordConfirmation: args[2],
	}
	res := a.session.Register(ctx, reg)
	if !res.Success {
		return fmt.Errorf("registration failed: %v", res.Err)
	}
	fmt.Printf("Welcome, %s! You are now logged in.\n", a.session.Current().Name)
	return nil
}

func (a *App) logoutCmd(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	res := a.session.Logout(ctx)
	if !res.Success {
		return fmt.Errorf("logout failed: %v", res.Err)
	}
	fmt.Println("Logged out")
	return nil
}

func (a *App) whoamiCmd() error {
	snap := a.session.Snapshot()
	if snap.State == session.StateLoading || snap.State == session.StateUninitialized {
		fmt.Println("Session state is not ready yet")
		return nil
	}
	if !snap.IsAuthenticated() {
		fmt.Println("Not logged in")
		return nil
	}
	printIdentity(snap.Identity)
	return nil
}

func (a *App) postsCmd(ctx context.Context) error {
	posts, err := a.posts.List(ctx)
	if err != nil {
		return err
	}
	printPosts(posts)
	return nil
}

func (a *App) postCmd(ctx context.Context, args []string) error {
	id, err := parseID(args, "post")
	if err != nil {
		return err
	}

	post, err := a.posts.Get(ctx, id)
	if err != nil {
		return err
	}
	comments, err := a.comments.ListForPost(ctx, id)
	if err != nil {
		return err
	}
	printPost(post, comments)
	return nil
}

func (a *App) publishCmd(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: publish <title> <body>")
	}

	post, err := a.posts.Create(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Published post #%d: %s\n", post.ID, post.Title)
	return nil
}

func (a *App) editCmd(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: edit <id> [-title t] [-body b]")
	}
	id, err := parseID(args[:1], "post")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	title := fs.String("title", "", "new title")
	body := fs.String("body", "", "new body")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if *title == "" && *body == "" {
		return fmt.Errorf("nothing to change; pass -title and/or -body")
	}

	// The PATCH keeps whatever field was not overridden.
	current, err := a.posts.Get(ctx, id)
	if err != nil {
		return err
	}
	newTitle, newBody := current.Title, current.Body
	if *title != "" {
		newTitle = *title
	}
	if *body != "" {
		newBody = *body
	}

	post, err := a.posts.Update(ctx, id, newTitle, newBody)
	if err != nil {
		return err
	}
	fmt.Printf("Updated post #%d: %s\n", post.ID, post.Title)
	return nil
}

func (a *App) unpublishCmd(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	id, err := parseID(args, "post")
	if err != nil {
		return err
	}

	if err := a.posts.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted post #%d\n", id)
	return nil
}

func (a *App) mineCmd(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	posts, err := a.posts.Mine(ctx)
	if err != nil {
		return err
	}
	printPosts(posts)
	return nil
}

func (a *App) commentsCmd(ctx context.Context, args []string) error {
	var (
		comments []*models.Comment
		err      error
	)
	if len(args) > 0 {
		var postID int
		postID, err = parseID(args, "post")
		if err != nil {
			return err
		}
		comments, err = a.comments.ListForPost(ctx, postID)
	} else {
		comments, err = a.comments.List(ctx)
	}
	if err != nil {
		return err
	}
	printComments(comments)
	return nil
}

func (a *App) commentCmd(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: comment <post-id> <body>")
	}
	postID, err := parseID(args[:1], "post")
	if err != nil {
		return err
	}

	comment, err := a.comments.Create(ctx, postID, args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Added comment #%d to post #%d\n", comment.ID, comment.PostID)
	return nil
}

func (a *App) uncommentCmd(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	id, err := parseID(args, "comment")
	if err != nil {
		return err
	}

	if err := a.comments.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted comment #%d\n", id)
	return nil
}

func parseID(args []string, kind string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("%s ID required", kind)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s ID %q", kind, args[0])
	}
	return id, nil
}
