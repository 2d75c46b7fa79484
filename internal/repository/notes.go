// Package repository persists note metadata. The blob payloads referenced by
// file_id live in the blob store; nothing here enforces that link, the
// service layer keeps the two consistent.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dharsanguruparan/notevault/internal/model"
	"github.com/dharsanguruparan/notevault/internal/pagination"
)

const noteColumns = "id, username, note_type, title, content, extracted_text, original_filename, extension, stored_filename, content_type, file_id, created_at"

// NotesRepository wraps all note SQL used by the service.
type NotesRepository struct {
	pool *pgxpool.Pool
}

// NewNotesRepository constructs a repository.
func NewNotesRepository(pool *pgxpool.Pool) *NotesRepository {
	return &NotesRepository{pool: pool}
}

// Insert assigns a fresh id and creation timestamp and writes the record.
func (r *NotesRepository) Insert(ctx context.Context, n *model.Note) error {
	n.ID = uuid.NewString()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	var fileID *string
	if n.FileID != "" {
		fileID = &n.FileID
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, n.ID, n.Username, n.NoteType, n.Title, n.Content, n.ExtractedText,
		n.OriginalFilename, n.Extension, n.StoredFilename, n.ContentType, fileID, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert note: %w: %w", model.ErrStorageWrite, err)
	}
	return nil
}

// Page returns one page of the user's notes plus the total match count.
// An empty query lists everything; otherwise title, content, extracted text,
// and original filename are matched case-insensitively as substrings.
func (r *NotesRepository) Page(ctx context.Context, username, query string, p pagination.Params) ([]model.Note, int, error) {
	p = p.Normalize()
	where := "username = $1"
	args := []any{username}
	if query != "" {
		where += ` AND (title ILIKE $2 OR content ILIKE $2 OR extracted_text ILIKE $2 OR original_filename ILIKE $2)`
		args = append(args, "%"+escapeLike(query)+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM notes WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notes: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE "+where+" "+p.OrderClause("created_at"),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select notes: %w", err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0, p.PerPage)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, 0, err
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, total, nil
}

// Get returns a note by id.
func (r *NotesRepository) Get(ctx context.Context, id string) (*model.Note, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("note id %q: %w", id, model.ErrInvalidID)
	}
	row := r.pool.QueryRow(ctx, "SELECT "+noteColumns+" FROM notes WHERE id = $1", id)
	return scanRow(row, id)
}

// GetByFileID returns the note referencing the given blob id.
func (r *NotesRepository) GetByFileID(ctx context.Context, fileID string) (*model.Note, error) {
	if _, err := uuid.Parse(fileID); err != nil {
		return nil, fmt.Errorf("file id %q: %w", fileID, model.ErrInvalidID)
	}
	row := r.pool.QueryRow(ctx, "SELECT "+noteColumns+" FROM notes WHERE file_id = $1", fileID)
	return scanRow(row, fileID)
}

// Delete removes the metadata record and reports whether a row was removed.
func (r *NotesRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, fmt.Errorf("note id %q: %w", id, model.ErrInvalidID)
	}
	tag, err := r.pool.Exec(ctx, "DELETE FROM notes WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanRow(row pgx.Row, id string) (*model.Note, error) {
	n, err := scanNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("note %s: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	return n, nil
}

func scanNote(row pgx.Row) (*model.Note, error) {
	var (
		n      model.Note
		fileID sql.NullString
	)
	if err := row.Scan(&n.ID, &n.Username, &n.NoteType, &n.Title, &n.Content,
		&n.ExtractedText, &n.OriginalFilename, &n.Extension, &n.StoredFilename,
		&n.ContentType, &fileID, &n.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	if fileID.Valid {
		n.FileID = fileID.String
	}
	return &n, nil
}

// escapeLike neutralizes LIKE metacharacters so the query matches literal
// substrings.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
