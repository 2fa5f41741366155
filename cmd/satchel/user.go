// User commands: account creation, listing, lookup, admin status, and
// password resets. Passwords arrive pre-hashed; the CLI never hashes.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/satchel-io/satchel/pkg/types"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var (
	userPasswordHash string
	userIsAdmin      bool
	userProfile      types.Profile
)

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create a new user account",
	Long: `Add creates a user account together with its empty progress record.

The --password-hash flag takes an already-hashed password; satchel stores it
as an opaque string.

Example:
  satchel user add alice --password-hash '$2b$12$...'
  satchel user add bob --password-hash '...' --full-name "Bob K." --class 5 --section B`,
	Args: cobra.ExactArgs(1),
	RunE: runUserAdd,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all user accounts, newest first",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

var userShowCmd = &cobra.Command{
	Use:   "show <username|id>",
	Short: "Show one user account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserShow,
}

var userSetAdminCmd = &cobra.Command{
	Use:   "set-admin <id> <true|false>",
	Short: "Grant or revoke admin rights",
	Args:  cobra.ExactArgs(2),
	RunE:  runUserSetAdmin,
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd <id>",
	Short: "Reset a user's password hash",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserPasswd,
}

func init() {
	userAddCmd.Flags().StringVar(&userPasswordHash, "password-hash", "", "pre-hashed password (required)")
	userAddCmd.Flags().BoolVar(&userIsAdmin, "admin", false, "create as administrator")
	userAddCmd.Flags().StringVar(&userProfile.FullName, "full-name", "", "full name")
	userAddCmd.Flags().StringVar(&userProfile.ParentName, "parent-name", "", "parent name")
	userAddCmd.Flags().StringVar(&userProfile.DOB, "dob", "", "date of birth")
	userAddCmd.Flags().StringVar(&userProfile.Class, "class", "", "class")
	userAddCmd.Flags().StringVar(&userProfile.Section, "section", "", "section")
	userAddCmd.Flags().StringVar(&userProfile.School, "school", "", "school")
	_ = userAddCmd.MarkFlagRequired("password-hash")

	userPasswdCmd.Flags().StringVar(&userPasswordHash, "password-hash", "", "new pre-hashed password (required)")
	_ = userPasswdCmd.MarkFlagRequired("password-hash")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userSetAdminCmd)
	userCmd.AddCommand(userPasswdCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	username := args[0]

	id, err := store.AddUser(username, userPasswordHash, &userProfile, userIsAdmin)
	if errors.Is(err, types.ErrDuplicateUsername) {
		return fmt.Errorf("username %q already exists", username)
	}
	if err != nil {
		return fmt.Errorf("add user: %w", err)
	}

	if flagJSON {
		return printJSON(cmd, map[string]any{"id": id, "username": username})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created user %s with ID %d\n", username, id)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	users, err := store.GetAllUsers()
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	if flagJSON {
		return printJSON(cmd, users)
	}
	for _, u := range users {
		admin := ""
		if u.IsAdmin {
			admin = " [admin]"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s%s\tcreated %s\n",
			u.ID, u.Username, admin, u.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func runUserShow(cmd *cobra.Command, args []string) error {
	user, err := lookupUser(args[0])
	if errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("no user %q", args[0])
	}
	if err != nil {
		return fmt.Errorf("show user: %w", err)
	}

	if flagJSON {
		return printJSON(cmd, user)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:        %d\n", user.ID)
	fmt.Fprintf(out, "Username:  %s\n", user.Username)
	fmt.Fprintf(out, "Admin:     %t\n", user.IsAdmin)
	fmt.Fprintf(out, "Created:   %s\n", user.CreatedAt.Format("2006-01-02 15:04:05"))
	if user.LastLogin != nil {
		fmt.Fprintf(out, "Last seen: %s\n", user.LastLogin.Format("2006-01-02 15:04:05"))
	}
	if user.Profile != (types.Profile{}) {
		fmt.Fprintf(out, "Profile:   %s, parent %s, class %s %s, %s\n",
			user.Profile.FullName, user.Profile.ParentName,
			user.Profile.Class, user.Profile.Section, user.Profile.School)
	}
	return nil
}

func runUserSetAdmin(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	isAdmin, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("invalid admin value %q (expected true or false)", args[1])
	}

	if err := store.SetAdminStatus(id, isAdmin); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("no user with ID %d", id)
		}
		return fmt.Errorf("set admin status: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "User %d admin=%t\n", id, isAdmin)
	return nil
}

func runUserPasswd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := store.ResetUserPassword(id, userPasswordHash); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("no user with ID %d", id)
		}
		return fmt.Errorf("reset password: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Password reset for user %d\n", id)
	return nil
}

// lookupUser resolves a positional argument as an ID when numeric, otherwise
// as a username.
func lookupUser(arg string) (*types.User, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil && id > 0 {
		return store.GetUserByID(id)
	}
	return store.GetUser(arg)
}
