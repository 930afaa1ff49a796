package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"sparks/internal/modules/journey/domain"
	journeyout "sparks/internal/modules/journey/port/out"
	"sparks/internal/platform/markdown"
	"sparks/internal/platform/slug"
)

const journalSchemaVersion = 1

var journalIndexBlock = markdown.ManagedBlock{
	Start: "<!-- sparks:reflections:start -->",
	End:   "<!-- sparks:reflections:end -->",
}

type reflectionMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	ID            string `yaml:"id"`
	QuestID       string `yaml:"quest_id"`
	QuestTitle    string `yaml:"quest_title"`
	Mood          string `yaml:"mood"`
	Points        int    `yaml:"points"`
	CreatedAt     string `yaml:"created_at"`
	PhotoURI      string `yaml:"photo_uri,omitempty"`
	AudioURI      string `yaml:"audio_uri,omitempty"`
}

// VaultJournalStore writes reflections as dated markdown notes.
type VaultJournalStore struct {
	dir string
}

func NewVaultJournalStore(dir string) journeyout.JournalStore {
	return &VaultJournalStore{dir: dir}
}

func (s *VaultJournalStore) WriteReflection(_ context.Context, r domain.Reflection) (string, error) {
	date := r.CreatedAt.UTC()
	dir := filepath.Join(s.dir, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(r.QuestTitle)))

	meta := reflectionMeta{
		SchemaVersion: journalSchemaVersion,
		ID:            r.ID,
		QuestID:       r.QuestID,
		QuestTitle:    r.QuestTitle,
		Mood:          r.Mood,
		Points:        r.Points,
		CreatedAt:     date.Format(time.RFC3339),
		PhotoURI:      r.PhotoURI,
		AudioURI:      r.AudioURI,
	}

	notes := ""
	if existing, err := os.ReadFile(path); err == nil {
		previous := reflectionMeta{}
		body, splitErr := markdown.SplitFrontmatter(string(existing), &previous)
		if splitErr == nil && previous.ID == r.ID {
			notes = userNotes(body)
		}
	}

	body := fmt.Sprintf("# %s\n\n- Mood: %s\n- Points: %d\n\n## Reflection\n\n%s\n\n## Notes\n%s", r.QuestTitle, r.Mood, r.Points, r.Text, notes)
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write reflection note: %w", err)
	}
	return path, nil
}

// WriteIndex regenerates the link list inside journal/index.md, keeping
// anything the user wrote around it.
func (s *VaultJournalStore) WriteIndex(_ context.Context, entries []domain.JournalEntry) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	path := filepath.Join(s.dir, "index.md")
	content := "# Journal\n"
	if b, err := os.ReadFile(path); err == nil {
		content = string(b)
	}

	sorted := append([]domain.JournalEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	lines := make([]string, 0, len(sorted))
	for _, e := range sorted {
		rel, err := filepath.Rel(s.dir, e.Path)
		if err != nil {
			rel = e.Path
		}
		lines = append(lines, fmt.Sprintf("- %s [%s](%s) (%s)", e.CreatedAt.UTC().Format("2006-01-02"), e.QuestTitle, filepath.ToSlash(rel), e.Mood))
	}

	content = journalIndexBlock.Apply(content, strings.Join(lines, "\n"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write journal index: %w", err)
	}
	return path, nil
}

func userNotes(body string) string {
	const heading = "## Notes\n"
	idx := strings.Index(body, heading)
	if idx < 0 {
		return ""
	}
	return body[idx+len(heading):]
}
