package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"forum-server/db"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	username string
	email    string
	isStaff  bool
)

func init() {
	RootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersTokenCmd)
	usersCmd.AddCommand(usersListCmd)

	usersCreateCmd.Flags().StringVar(&username, "username", "", "Username (at least 3 characters)")
	usersCreateCmd.Flags().StringVar(&email, "email", "", "Email address")
	usersCreateCmd.Flags().BoolVar(&isStaff, "staff", false, "Grant staff permissions")
	usersCreateCmd.MarkFlagRequired("username")
	usersCreateCmd.MarkFlagRequired("email")
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage forum users",
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user and print a sign-in token",
	Args:  cobra.NoArgs,
	Run:   createUser,
}

var usersTokenCmd = &cobra.Command{
	Use:   "token <username>",
	Short: "Issue a new sign-in token for a user",
	Args:  cobra.ExactArgs(1),
	Run:   issueToken,
}

var usersListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List users",
	Args:    cobra.NoArgs,
	Run:     listUsers,
}

func createUser(cmd *cobra.Command, args []string) {
	mustConnect()
	ctx := context.Background()

	user, err := db.CreateUser(ctx, username, email, isStaff)
	if err != nil {
		exitWithError("Error creating user: %v", err)
	}

	token, _, err := db.CreateAuthToken(ctx, user.Id)
	if err != nil {
		exitWithError("Error creating auth token: %v", err)
	}

	success("Created user %s (id %d)", user.Username, user.Id)
	printToken(token)
}

func issueToken(cmd *cobra.Command, args []string) {
	mustConnect()
	ctx := context.Background()

	user, err := db.GetUserByUsername(ctx, args[0])
	if err != nil {
		exitWithError("Error getting user: %v", err)
	}
	if user == nil {
		exitWithError("No user named %s", args[0])
	}

	token, _, err := db.CreateAuthToken(ctx, user.Id)
	if err != nil {
		exitWithError("Error creating auth token: %v", err)
	}

	printToken(token)
}

func printToken(token string) {
	fmt.Println()
	fmt.Println("Sign-in token (shown once):")
	fmt.Println(color.New(color.Bold, color.FgHiCyan).Sprint(token))
	fmt.Println()
}

func listUsers(cmd *cobra.Command, args []string) {
	mustConnect()

	users, err := db.ListUsers(context.Background())
	if err != nil {
		exitWithError("Error listing users: %v", err)
	}

	if len(users) == 0 {
		fmt.Println("🤷‍♂️ No users yet")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Id", "Username", "Email", "Staff", "Joined"})

	for _, u := range users {
		staff := ""
		if u.IsStaff {
			staff = "yes"
		}
		table.Append([]string{
			strconv.FormatInt(u.Id, 10),
			u.Username,
			u.Email,
			staff,
			u.CreatedAt.Format("2006-01-02"),
		})
	}

	table.Render()
}
