package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharsanguruparan/notevault/internal/model"
	"github.com/dharsanguruparan/notevault/internal/pagination"
)

func seedNotes(t *testing.T, repo *MemoryRepository, username string, n int) []model.Note {
	t.Helper()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	out := make([]model.Note, 0, n)
	for i := 0; i < n; i++ {
		note := model.Note{
			Username:  username,
			NoteType:  model.TypeText,
			Title:     fmt.Sprintf("note %02d", i),
			Content:   fmt.Sprintf("content %02d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Insert(context.Background(), &note))
		out = append(out, note)
	}
	return out
}

func TestInsertAssignsID(t *testing.T) {
	repo := NewMemoryRepository()
	n := model.Note{Username: "alice", NoteType: model.TypeText, Content: "hi"}
	require.NoError(t, repo.Insert(context.Background(), &n))
	require.NotEmpty(t, n.ID)
	_, err := uuid.Parse(n.ID)
	assert.NoError(t, err)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestPagePagination(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	seedNotes(t, repo, "bob", 25)

	page, total, err := repo.Page(ctx, "bob", "", pagination.Params{Page: 3, PerPage: 10, Sort: "asc"})
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, page, 5)
	assert.Equal(t, "note 20", page[0].Title)
	assert.Equal(t, "note 24", page[4].Title)

	// A page past the end is empty, not an error; total stays intact.
	page, total, err = repo.Page(ctx, "bob", "", pagination.Params{Page: 7, PerPage: 10, Sort: "asc"})
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Empty(t, page)
}

func TestPageConcatenationCoversAll(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	seedNotes(t, repo, "bob", 25)

	seen := map[string]bool{}
	var prev time.Time
	for pageNum := 1; pageNum <= 3; pageNum++ {
		page, total, err := repo.Page(ctx, "bob", "", pagination.Params{Page: pageNum, PerPage: 10, Sort: "asc"})
		require.NoError(t, err)
		assert.Equal(t, 25, total)
		for _, n := range page {
			assert.False(t, seen[n.ID], "no duplicates across pages")
			seen[n.ID] = true
			assert.False(t, n.CreatedAt.Before(prev), "ascending order across pages")
			prev = n.CreatedAt
		}
	}
	assert.Len(t, seen, 25, "no omissions")
}

func TestPageSortDesc(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	seedNotes(t, repo, "bob", 5)

	page, _, err := repo.Page(ctx, "bob", "", pagination.Params{Page: 1, PerPage: 10, Sort: "desc"})
	require.NoError(t, err)
	require.Len(t, page, 5)
	for i := 1; i < len(page); i++ {
		assert.False(t, page[i].CreatedAt.After(page[i-1].CreatedAt), "non-increasing timestamps")
	}
}

func TestPageScopedToUser(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	seedNotes(t, repo, "alice", 3)
	seedNotes(t, repo, "bob", 2)

	_, total, err := repo.Page(ctx, "alice", "", pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestPageSearchFields(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	notes := []model.Note{
		{Username: "alice", NoteType: model.TypeText, Title: "Groceries", Content: "buy milk"},
		{Username: "alice", NoteType: model.TypePDF, OriginalFilename: "Quarterly-Report.pdf"},
		{Username: "alice", NoteType: model.TypeDocx, ExtractedText: "meeting minutes for June"},
	}
	for i := range notes {
		require.NoError(t, repo.Insert(ctx, &notes[i]))
	}

	for _, tc := range []struct {
		query string
		want  int
	}{
		{"MILK", 1},      // content, case-insensitive
		{"grocer", 1},    // title
		{"quarterly", 1}, // original filename
		{"minutes", 1},   // extracted text
		{"eggs", 0},
	} {
		_, total, err := repo.Page(ctx, "alice", tc.query, pagination.Params{})
		require.NoError(t, err)
		assert.Equal(t, tc.want, total, "query %q", tc.query)
	}

	// Empty query behaves exactly like list.
	_, total, err := repo.Page(ctx, "alice", "", pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestGetByFileID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	fileID := uuid.NewString()
	n := model.Note{Username: "alice", NoteType: model.TypePDF, FileID: fileID}
	require.NoError(t, repo.Insert(ctx, &n))

	got, err := repo.GetByFileID(ctx, fileID)
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, fileID, got.FileID)

	_, err = repo.GetByFileID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = repo.GetByFileID(ctx, "malformed")
	assert.ErrorIs(t, err, model.ErrInvalidID)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	n := model.Note{Username: "alice", NoteType: model.TypeText, Content: "bye"}
	require.NoError(t, repo.Insert(ctx, &n))

	removed, err := repo.Delete(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, removed, "second delete removes nothing")

	_, err = repo.Get(ctx, n.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_done\\`, escapeLike(`100%_done\`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
