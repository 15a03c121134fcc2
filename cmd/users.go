package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tanmay-g/prepdrill/internal/auth"
	"github.com/tanmay-g/prepdrill/internal/store"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered users",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		users, err := st.Users().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		if len(users) == 0 {
			fmt.Println("No users registered.")
			return nil
		}
		for _, u := range users {
			fmt.Printf("%s  (since %s)\n", u.Username, u.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

var usersPasswdCmd = &cobra.Command{
	Use:   "passwd <username>",
	Short: "Reset a user's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		password, err := readPassword(cmd)
		if err != nil {
			return err
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if err := st.Users().ReplacePassword(cmd.Context(), username, hash); err != nil {
			if err == store.ErrUserNotFound {
				return fmt.Errorf("unknown user %q", username)
			}
			return err
		}
		fmt.Printf("Password updated for %s.\n", username)
		return nil
	},
}

// readPassword takes the --password flag when set, else reads one line
// from stdin so the password stays out of shell history.
func readPassword(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("password"); p != "" {
		return p, nil
	}
	fmt.Fprint(os.Stderr, "New password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return password, nil
}

func init() {
	usersPasswdCmd.Flags().String("password", "", "New password (prompted on stdin when omitted)")
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersPasswdCmd)
}
