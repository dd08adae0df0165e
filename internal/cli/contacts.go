package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/olenko/satchel/internal/domain"
	"github.com/olenko/satchel/internal/service"
)

var contactsCmd = &cobra.Command{
	Use:     "contacts",
	Aliases: []string{"contact"},
	Short:   "Manage contacts",
}

var contactsAddCmd = &cobra.Command{
	Use:   "add <name> [surname] [phone] [email] [address...]",
	Short: "Add a contact or merge details into an existing one",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var surname, phone, email, address string
		name := args[0]
		if len(args) > 1 {
			surname = args[1]
		}
		if len(args) > 2 {
			phone = args[2]
		}
		if len(args) > 3 {
			email = args[3]
		}
		if len(args) > 4 {
			address = strings.Join(args[4:], " ")
		}

		created, err := appInstance.Book.Upsert(name, surname, phone, email, address)
		if err != nil {
			return err
		}
		if err := appInstance.SaveAll(ctx); err != nil {
			return err
		}

		if created {
			fmt.Println("✓ Contact added.")
		} else {
			fmt.Println("✓ Contact updated.")
		}
		return nil
	},
}

var contactsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"all"},
	Short:   "List all contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		recs := appInstance.Book.Records()
		if len(recs) == 0 {
			fmt.Println("No contacts.")
			return nil
		}
		printRecords(recs)
		return nil
	},
}

var contactsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search contacts by name, phone, or notes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		recs := service.SearchRecords(appInstance.Book, query)
		if len(recs) == 0 {
			fmt.Println("No contacts.")
			return nil
		}
		printRecords(recs)
		return nil
	},
}

var contactsPhoneCmd = &cobra.Command{
	Use:   "phone <name>",
	Short: "Show a contact's phone numbers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, rec, err := resolveContact(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if len(rec.Phones) == 0 {
			fmt.Println("No phones.")
			return nil
		}
		fmt.Printf("%s: %s\n", rec.FullName(), strings.Join(rec.Phones, ", "))
		return nil
	},
}

var (
	changePhone   string
	changeEmail   string
	changeAddress string
)

var contactsChangeCmd = &cobra.Command{
	Use:   "change <name>",
	Short: "Update a contact's phone, email, or address",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		_, rec, err := resolveContact(strings.Join(args, " "))
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if !flags.Changed("phone") && !flags.Changed("email") && !flags.Changed("address") {
			return fmt.Errorf("nothing to change: pass --phone, --email, or --address")
		}

		var updated []string
		if flags.Changed("phone") {
			if err := rec.ReplacePhones(changePhone); err != nil {
				return err
			}
			updated = append(updated, "Phone")
		}
		if flags.Changed("email") {
			if err := rec.SetEmail(changeEmail); err != nil {
				return err
			}
			updated = append(updated, "Email")
		}
		if flags.Changed("address") {
			rec.SetAddress(changeAddress)
			updated = append(updated, "Address")
		}

		if err := appInstance.SaveAll(ctx); err != nil {
			return err
		}
		for _, field := range updated {
			fmt.Printf("✓ %s updated for %s.\n", field, rec.FullName())
		}
		return nil
	},
}

var contactsChangeEmailCmd = &cobra.Command{
	Use:   "change-email <name> <email>",
	Short: "Replace a contact's email address",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		email := args[len(args)-1]
		_, rec, err := resolveContact(strings.Join(args[:len(args)-1], " "))
		if err != nil {
			return err
		}

		if err := rec.SetEmail(email); err != nil {
			return err
		}
		if err := appInstance.SaveAll(ctx); err != nil {
			return err
		}
		fmt.Printf("✓ Email updated for %s.\n", rec.FullName())
		return nil
	},
}

var contactsChangeAddressCmd = &cobra.Command{
	Use:   "change-address <name> <address...>",
	Short: "Replace a contact's address",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		_, rec, err := resolveContact(args[0])
		if err != nil {
			return err
		}

		rec.SetAddress(strings.Join(args[1:], " "))
		if err := appInstance.SaveAll(ctx); err != nil {
			return err
		}
		fmt.Printf("✓ Address updated for %s.\n", rec.FullName())
		return nil
	},
}

var contactsRemovePhoneCmd = &cobra.Command{
	Use:   "remove-phone <name> <phone>",
	Short: "Remove a phone number from a contact",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		phone := args[len(args)-1]
		_, rec, err := resolveContact(strings.Join(args[:len(args)-1], " "))
		if err != nil {
			return err
		}

		rec.RemovePhone(phone)
		if err := appInstance.SaveAll(ctx); err != nil {
			return err
		}
		fmt.Println("✓ Phone removed.")
		return nil
	},
}

var contactsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a contact",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		key, _, err := resolveContact(strings.Join(args, " "))
		if err != nil {
			return err
		}

		appInstance.Book.Remove(key)
		if err := appInstance.SaveAll(ctx); err != nil {
			return err
		}
		fmt.Println("✓ Contact deleted.")
		return nil
	},
}

var contactsAddBirthdayCmd = &cobra.Command{
	Use:   "add-birthday <name> <DD.MM.YYYY>",
	Short: "Set a contact's birthday",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		date := args[len(args)-1]
		_, rec, err := resolveContact(strings.Join(args[:len(args)-1], " "))
		if err != nil {
			return err
		}

		if err := rec.SetBirthday(date); err != nil {
			return err
		}
		if err := appInstance.SaveAll(ctx); err != nil {
			return err
		}
		fmt.Println("✓ Birthday added.")
		return nil
	},
}

var contactsShowBirthdayCmd = &cobra.Command{
	Use:   "show-birthday <name or surname>",
	Short: "Show birthdays for contacts matching a name exactly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		matches := appInstance.Book.FindExact(args[0])
		if len(matches) == 0 {
			return domain.ErrNotFound
		}
		for _, rec := range matches {
			fmt.Printf("%s: %s\n", rec.FullName(), formatBirthday(rec))
		}
		return nil
	},
}

var contactsBirthdaysCmd = &cobra.Command{
	Use:   "birthdays [days]",
	Short: "List birthdays coming up within a window of days",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days := appInstance.Config.Birthdays.DefaultWindowDays
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return fmt.Errorf("enter a non-negative integer")
			}
			days = n
		}

		upcoming := service.UpcomingBirthdays(appInstance.Book, days, time.Now())
		if len(upcoming) == 0 {
			fmt.Println("No birthdays in this period.")
			return nil
		}

		type row struct {
			key string
			occ service.Occurrence
		}
		rows := make([]row, 0, len(upcoming))
		for key, occ := range upcoming {
			rows = append(rows, row{key, occ})
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].occ.Date.Before(rows[j].occ.Date)
		})

		fmt.Printf("%-14s %-32s %s\n", "DATE", "CONTACT", "TURNS")
		fmt.Println(strings.Repeat("-", 52))
		for _, r := range rows {
			fmt.Printf("%-14s %-32s %d\n",
				r.occ.Date.Format(domain.BirthdayLayout),
				truncate(titleCase(r.key), 31),
				r.occ.Age,
			)
		}
		return nil
	},
}

var contactsAddNoteCmd = &cobra.Command{
	Use:   "add-note <name> <text...>",
	Short: "Attach a note to a contact",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		_, rec, err := resolveContact(args[0])
		if err != nil {
			return err
		}

		if err := rec.AddNote(strings.Join(args[1:], " ")); err != nil {
			return err
		}
		if err := appInstance.SaveAll(ctx); err != nil {
			return err
		}
		fmt.Println("✓ Note added.")
		return nil
	},
}

// resolveContact turns partial name input into a stored contact, asking on
// stdin when several contacts match.
func resolveContact(input string) (string, *domain.Record, error) {
	key, err := service.NewResolver(stdinPrompter{}).Resolve(appInstance.Book, input)
	if err != nil {
		return "", nil, err
	}
	rec, ok := appInstance.Book.Get(key)
	if !ok {
		return "", nil, domain.ErrNotFound
	}
	return key, rec, nil
}

func printRecords(recs []*domain.Record) {
	fmt.Printf("%-22s %-26s %-12s %-24s %-22s %s\n", "NAME", "PHONES", "BIRTHDAY", "EMAIL", "ADDRESS", "NOTES")
	fmt.Println(strings.Repeat("-", 130))

	for _, rec := range recs {
		phones := "—"
		if len(rec.Phones) > 0 {
			phones = strings.Join(rec.Phones, ", ")
		}
		email := rec.Email
		if email == "" {
			email = "—"
		}
		address := rec.Address
		if address == "" {
			address = "—"
		}
		notes := "—"
		if len(rec.Notes) > 0 {
			notes = strings.Join(rec.Notes, " | ")
		}

		fmt.Printf("%-22s %-26s %-12s %-24s %-22s %s\n",
			truncate(rec.FullName(), 21),
			truncate(phones, 25),
			formatBirthday(rec),
			truncate(email, 23),
			truncate(address, 21),
			truncate(notes, 30),
		)
	}
	fmt.Printf("\nTotal: %d contact(s)\n", len(recs))
}

func init() {
	contactsChangeCmd.Flags().StringVar(&changePhone, "phone", "", "New phone number (replaces the stored ones)")
	contactsChangeCmd.Flags().StringVar(&changeEmail, "email", "", "New email address")
	contactsChangeCmd.Flags().StringVar(&changeAddress, "address", "", "New address")

	contactsCmd.AddCommand(contactsAddCmd)
	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsSearchCmd)
	contactsCmd.AddCommand(contactsPhoneCmd)
	contactsCmd.AddCommand(contactsChangeCmd)
	contactsCmd.AddCommand(contactsChangeEmailCmd)
	contactsCmd.AddCommand(contactsChangeAddressCmd)
	contactsCmd.AddCommand(contactsRemovePhoneCmd)
	contactsCmd.AddCommand(contactsDeleteCmd)
	contactsCmd.AddCommand(contactsAddBirthdayCmd)
	contactsCmd.AddCommand(contactsShowBirthdayCmd)
	contactsCmd.AddCommand(contactsBirthdaysCmd)
	contactsCmd.AddCommand(contactsAddNoteCmd)
}
