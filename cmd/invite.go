package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tanmay-g/prepdrill/internal/store"
)

var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Manage invitation codes",
}

var inviteNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new invitation code",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, _ := cmd.Flags().GetInt("count")
		if n < 1 {
			n = 1
		}
		for range n {
			code, err := st.Invites().Generate(cmd.Context())
			if err != nil {
				return fmt.Errorf("generate invitation code: %w", err)
			}
			fmt.Println(code)
		}
		return nil
	},
}

var inviteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invitation codes and their status",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		invites, err := st.Invites().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list invitation codes: %w", err)
		}
		if len(invites) == 0 {
			fmt.Println("No invitation codes. Run 'prepdrill invite new' to create one.")
			return nil
		}
		for _, inv := range invites {
			status := "unused"
			if inv.Used && inv.UsedBy != nil {
				status = fmt.Sprintf("used by %s", *inv.UsedBy)
			}
			fmt.Printf("%s  %s  (%s)\n", inv.Code, inv.GeneratedAt.Format("2006-01-02"), status)
		}
		return nil
	},
}

// openStore is the shared open path for management subcommands.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func init() {
	inviteNewCmd.Flags().Int("count", 1, "Number of codes to generate")
	inviteCmd.AddCommand(inviteNewCmd)
	inviteCmd.AddCommand(inviteListCmd)
}
