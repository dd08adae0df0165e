package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olenko/satchel/internal/app"
)

var registerCmd = &cobra.Command{
	Use:   "register [username]",
	Short: "Register a new user",
	Long: `Create a new user with an encrypted book. You will be asked to choose
a passphrase; it protects the book on disk and is stored in the system
keyring when one is available.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := ""
		if len(args) == 1 {
			username = args[0]
		}
		if username == "" {
			fmt.Print("Enter a username: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read username: %w", err)
			}
			username = strings.TrimSpace(line)
		}

		if err := app.Register(context.Background(), username); err != nil {
			return err
		}

		fmt.Printf("✓ User %s registered\n", username)
		fmt.Printf("Run 'satchel --user %s' to open the book.\n", username)
		return nil
	},
}
