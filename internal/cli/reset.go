package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olenko/satchel/internal/crypto"
	"github.com/olenko/satchel/internal/db"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe data from the current user's book",
	Long: `Wipe data from the current user's book.

Examples:
  satchel reset contacts   # Delete every contact
  satchel reset notes      # Delete every notebook entry
  satchel reset all        # Empty the book completely
  satchel reset user       # Remove the book file and the stored key`,
}

var resetContactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Delete all contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL contacts. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := clearTables("contact_phones", "contact_notes", "contacts"); err != nil {
			return err
		}

		fmt.Println("All contacts have been deleted.")
		return nil
	},
}

var resetNotesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Delete all notebook entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL notes. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := clearTables("note_tags", "notes"); err != nil {
			return err
		}

		fmt.Println("All notes have been deleted.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete ALL data: contacts and notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL data (contacts and notes). Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := clearTables("contact_phones", "contact_notes", "contacts", "note_tags", "notes"); err != nil {
			return err
		}

		fmt.Println("All data has been deleted.")
		return nil
	},
}

var resetUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Remove the current user's book file and stored key",
	RunE: func(cmd *cobra.Command, args []string) error {
		username := appInstance.User
		if !confirmPrompt(fmt.Sprintf("This will remove the book of %q and its stored key. Continue?", username)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.DB.Close(); err != nil {
			return fmt.Errorf("failed to close book: %w", err)
		}

		path := db.UserDBPath(appInstance.Config.Storage.DataDir, username)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove book file: %w", err)
		}

		if err := crypto.NewKeyring().DeleteKey(username); err != nil {
			fmt.Printf("Warning: could not remove the stored key: %v\n", err)
		}

		if appInstance.Config.DefaultUser == username {
			appInstance.Config.DefaultUser = ""
			if err := appInstance.SaveConfig(); err != nil {
				return fmt.Errorf("failed to update config: %w", err)
			}
		}

		fmt.Printf("User %s has been removed.\n", username)
		return nil
	},
}

// clearTables empties the given tables in order. Children must come
// before their parents because of the foreign keys.
func clearTables(tables ...string) error {
	for _, table := range tables {
		if _, err := appInstance.DB.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetContactsCmd)
	resetCmd.AddCommand(resetNotesCmd)
	resetCmd.AddCommand(resetAllCmd)
	resetCmd.AddCommand(resetUserCmd)
}
