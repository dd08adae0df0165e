package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olenko/satchel/internal/service"
)

var notesCmd = &cobra.Command{
	Use:     "notes",
	Aliases: []string{"note"},
	Short:   "Manage the notebook",
}

var noteTags string

var notesAddCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Add a note",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if _, err := appInstance.Notebook.Add(strings.Join(args, " "), splitTags(noteTags)); err != nil {
			return err
		}
		if err := appInstance.SaveAll(ctx); err != nil {
			return err
		}
		fmt.Println("✓ Note added.")
		return nil
	},
}

var notesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"all"},
	Short:   "List all notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		nb := appInstance.Notebook
		if nb.Len() == 0 {
			fmt.Println("No notes.")
			return nil
		}

		fmt.Printf("%-4s %-12s %-24s %s\n", "#", "DATE", "TAGS", "TEXT")
		fmt.Println(strings.Repeat("-", 80))
		for i, n := range nb.Notes {
			fmt.Printf("%-4d %-12s %-24s %s\n",
				i+1,
				n.CreatedAt.Format("2006-01-02"),
				truncate(tagsOrDash(n.Tags), 23),
				n.Text,
			)
		}
		fmt.Printf("\nTotal: %d note(s)\n", nb.Len())
		return nil
	},
}

var notesTagCmd = &cobra.Command{
	Use:   "tag <number> <tags...>",
	Short: "Add tags to a note by its number",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("note number must be an integer")
		}
		if err := appInstance.Notebook.TagNote(index, splitTags(strings.Join(args[1:], " "))); err != nil {
			return err
		}
		if err := appInstance.SaveAll(ctx); err != nil {
			return err
		}
		fmt.Println("✓ Tags added.")
		return nil
	},
}

var notesSearchTagCmd = &cobra.Command{
	Use:   "search-tag <tag>",
	Short: "List notes carrying an exact tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag := args[0]
		found := appInstance.Notebook.FindByTag(tag)
		if len(found) == 0 {
			fmt.Printf("No notes with tag '%s'.\n", tag)
			return nil
		}
		for _, n := range found {
			fmt.Println(renderNote(n))
		}
		return nil
	},
}

var notesSearchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search notes by keywords, then semantically",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		nb := appInstance.Notebook
		if nb.Len() == 0 {
			fmt.Println("No notes to search.")
			return nil
		}

		result, err := appInstance.NoteSearch.Search(ctx, nb, strings.Join(args, " "))
		if err != nil {
			return err
		}

		switch result.Source {
		case service.SourceKeyword:
			fmt.Println("Keyword match:")
		case service.SourceSemantic:
			if len(result.Hits) == 0 {
				fmt.Println("No semantic matches.")
				return nil
			}
			fmt.Println("Semantic match:")
		case service.SourceDisabled:
			fmt.Println("AI search disabled (no API key).")
		}

		for _, hit := range result.Hits {
			fmt.Printf("%d. %s\n", hit.Index, renderNote(hit.Note))
		}
		return nil
	},
}

func init() {
	notesAddCmd.Flags().StringVar(&noteTags, "tags", "", "Comma or space separated tags")

	notesCmd.AddCommand(notesAddCmd)
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesTagCmd)
	notesCmd.AddCommand(notesSearchTagCmd)
	notesCmd.AddCommand(notesSearchCmd)
}
