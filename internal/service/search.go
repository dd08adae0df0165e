package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/olenko/satchel/internal/domain"
)

// wordRE extracts word tokens: letters, digits, underscore.
var wordRE = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// SearchRecords returns the records containing the whole query as a
// substring of the name, surname, or a contact note (case-insensitively),
// or of a phone number, in insertion order. The query is taken as one
// literal substring; it is never split into words. Note search below works
// differently on purpose.
func SearchRecords(book *domain.AddressBook, query string) []*domain.Record {
	q := strings.ToLower(query)
	var out []*domain.Record
	for _, rec := range book.Records() {
		if recordMatches(rec, q) {
			out = append(out, rec)
		}
	}
	return out
}

func recordMatches(rec *domain.Record, q string) bool {
	if strings.Contains(strings.ToLower(rec.Name), q) ||
		strings.Contains(strings.ToLower(rec.Surname), q) {
		return true
	}
	for _, p := range rec.Phones {
		if strings.Contains(p, q) {
			return true
		}
	}
	for _, n := range rec.Notes {
		if strings.Contains(strings.ToLower(n), q) {
			return true
		}
	}
	return false
}

// MatchNote reports whether every word token of the query appears as a
// substring of the note's text or of its space-joined tag list,
// case-insensitively. A query with no word tokens matches vacuously.
func MatchNote(n *domain.Note, query string) bool {
	text := strings.ToLower(n.Text)
	tags := strings.ToLower(strings.Join(n.Tags, " "))
	for _, tok := range wordRE.FindAllString(strings.ToLower(query), -1) {
		if !strings.Contains(text, tok) && !strings.Contains(tags, tok) {
			return false
		}
	}
	return true
}

// SemanticSearcher is the optional AI collaborator behind note search.
// Given the full notebook it returns the one-based indices of the notes
// relevant to the query.
type SemanticSearcher interface {
	RelevantNotes(ctx context.Context, query string, notes []*domain.Note) ([]int, error)
}

// NoteSearchSource tells which stage produced a search result.
type NoteSearchSource int

const (
	// SourceKeyword means the keyword filter found matches.
	SourceKeyword NoteSearchSource = iota
	// SourceSemantic means the semantic collaborator was consulted; its
	// hit list may be empty.
	SourceSemantic
	// SourceDisabled means the keyword filter found nothing and no
	// semantic collaborator is configured.
	SourceDisabled
)

// NoteHit is one found note together with its one-based notebook index.
type NoteHit struct {
	Index int
	Note  *domain.Note
}

// NoteSearchResult is the outcome of a note search.
type NoteSearchResult struct {
	Source NoteSearchSource
	Hits   []NoteHit
}

// NoteSearch finds notes in two stages: a keyword filter over text and
// tags, then the semantic collaborator for queries the keyword pass
// missed.
type NoteSearch interface {
	Search(ctx context.Context, nb *domain.Notebook, query string) (NoteSearchResult, error)
}

type noteSearch struct {
	semantic SemanticSearcher
}

// NewNoteSearch creates a note searcher. semantic may be nil, in which
// case queries the keyword filter misses report SourceDisabled.
func NewNoteSearch(semantic SemanticSearcher) NoteSearch {
	return &noteSearch{semantic: semantic}
}

func (s *noteSearch) Search(ctx context.Context, nb *domain.Notebook, query string) (NoteSearchResult, error) {
	var hits []NoteHit
	for i, n := range nb.Notes {
		if MatchNote(n, query) {
			hits = append(hits, NoteHit{Index: i + 1, Note: n})
		}
	}
	if len(hits) > 0 {
		return NoteSearchResult{Source: SourceKeyword, Hits: hits}, nil
	}

	if s.semantic == nil {
		return NoteSearchResult{Source: SourceDisabled}, nil
	}
	idxs, err := s.semantic.RelevantNotes(ctx, query, nb.Notes)
	if err != nil {
		return NoteSearchResult{}, fmt.Errorf("semantic search: %w", err)
	}
	for _, idx := range idxs {
		// Out-of-range indices from the collaborator are dropped.
		if n, err := nb.Note(idx); err == nil {
			hits = append(hits, NoteHit{Index: idx, Note: n})
		}
	}
	return NoteSearchResult{Source: SourceSemantic, Hits: hits}, nil
}
