package cli

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/olenko/satchel/internal/domain"
)

var tagSplitRE = regexp.MustCompile(`[ ,]+`)

// splitTags splits raw tag input on spaces and commas.
func splitTags(raw string) []string {
	var tags []string
	for _, t := range tagSplitRE.Split(raw, -1) {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// titleCase renders a lowercased store key for display.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func renderNote(n *domain.Note) string {
	return fmt.Sprintf("%s   [%s]   %s", n.CreatedAt.Format("2006-01-02"), tagsOrDash(n.Tags), n.Text)
}

func tagsOrDash(tags []string) string {
	if len(tags) == 0 {
		return "—"
	}
	return strings.Join(tags, ", ")
}

func formatBirthday(rec *domain.Record) string {
	if rec.Birthday == nil {
		return "—"
	}
	return rec.Birthday.Format(domain.BirthdayLayout)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
