// Package notes orchestrates the note lifecycle: filename resolution, blob
// storage, best-effort text extraction, and metadata persistence.
package notes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dharsanguruparan/notevault/internal/blob"
	"github.com/dharsanguruparan/notevault/internal/extract"
	"github.com/dharsanguruparan/notevault/internal/filename"
	"github.com/dharsanguruparan/notevault/internal/model"
	"github.com/dharsanguruparan/notevault/internal/pagination"
)

// Repository is the metadata store the service runs against.
type Repository interface {
	Insert(ctx context.Context, n *model.Note) error
	Page(ctx context.Context, username, query string, p pagination.Params) ([]model.Note, int, error)
	Get(ctx context.Context, id string) (*model.Note, error)
	GetByFileID(ctx context.Context, fileID string) (*model.Note, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Service owns the note-and-file persistence logic.
type Service struct {
	repo   Repository
	blobs  blob.Store
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, blobs blob.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, blobs: blobs, logger: logger}
}

// Upload is a readable payload source. Handlers adapt whatever shape the
// transport delivers (multipart part, buffered form file) into this once at
// the boundary.
type Upload struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// CreateInput carries one note-creation request.
type CreateInput struct {
	Username string
	NoteType string
	Title    string
	Content  string
	File     *Upload
}

// Page is one slice of a user's notes plus the full match count, so clients
// can compute page counts themselves.
type Page struct {
	Notes   []model.Note `json:"notes"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
}

// Download is a resolved blob ready to stream back to the client.
type Download struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Create persists a note. Text notes store the author's content directly.
// File notes store the payload in the blob store first; any blob write
// failure aborts the whole operation so no metadata row ever references a
// blob that was never written. The reverse gap is accepted: a metadata
// insert failure after a successful blob write leaves an orphaned blob,
// which is logged and not cleaned up.
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.Note, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, fmt.Errorf("username: %w", model.ErrInvalidInput)
	}
	if strings.TrimSpace(in.NoteType) == "" {
		return nil, fmt.Errorf("note_type: %w", model.ErrInvalidInput)
	}
	note := &model.Note{
		Username:  in.Username,
		NoteType:  in.NoteType,
		Title:     in.Title,
		CreatedAt: time.Now().UTC(),
	}
	if note.IsTextNote() {
		note.Content = in.Content
	} else if err := s.attachFile(ctx, note, in.File); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, note); err != nil {
		if note.FileID != "" {
			// Known leak: the blob has no referencing record now. Cleanup is
			// deliberately not attempted here.
			s.logger.Error("metadata insert failed after blob write, blob orphaned",
				"file_id", note.FileID, "username", note.Username, "error", err)
		}
		return nil, err
	}
	return note, nil
}

func (s *Service) attachFile(ctx context.Context, note *model.Note, file *Upload) error {
	if file == nil || file.Content == nil {
		return model.ErrMissingFile
	}
	data, err := io.ReadAll(file.Content)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return model.ErrMissingFile
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	res := filename.Resolve(file.Name, contentType)
	fileID, err := s.blobs.Put(ctx, data, res.Working, contentType, map[string]string{
		blob.MetaOriginal:  res.Original,
		blob.MetaExtension: res.Extension,
	})
	if err != nil {
		return err
	}

	// Reconcile the stored name after the fact: if it still lacks an
	// extension, re-store the blob under a corrected name. Failures here are
	// non-critical; the original name keeps working.
	stored := res.Working
	if ext, ok := filename.Missing(stored, res.Extension, contentType); ok {
		corrected := stored + ext
		newID, err := s.blobs.Rename(ctx, fileID, corrected)
		if err != nil {
			s.logger.Warn("stored filename reconciliation failed",
				"file_id", fileID, "name", corrected, "error", err)
		} else {
			fileID = newID
			stored = corrected
		}
	}

	note.FileID = fileID
	note.OriginalFilename = res.Original
	note.StoredFilename = stored
	note.ContentType = contentType
	note.Extension = strings.TrimPrefix(filepath.Ext(stored), ".")
	note.ExtractedText = extract.Text(stored, data)
	return nil
}

// List returns one page of the user's notes ordered by creation time.
func (s *Service) List(ctx context.Context, username string, p pagination.Params) (*Page, error) {
	return s.Search(ctx, username, "", p)
}

// Search behaves like List when the query is empty; otherwise it returns the
// user's notes whose title, content, extracted text, or original filename
// contains the query as a case-insensitive substring.
func (s *Service) Search(ctx context.Context, username, query string, p pagination.Params) (*Page, error) {
	p = p.Normalize()
	matched, total, err := s.repo.Page(ctx, username, strings.TrimSpace(query), p)
	if err != nil {
		return nil, err
	}
	return &Page{Notes: matched, Total: total, Page: p.Page, PerPage: p.PerPage}, nil
}

// GetByFileReference returns the note whose file_id equals the given blob
// reference.
func (s *Service) GetByFileReference(ctx context.Context, fileID string) (*model.Note, error) {
	return s.repo.GetByFileID(ctx, fileID)
}

// Download fetches a blob and resolves the best available filename:
// the note's stored name, then its original name, then the blob's own
// recorded name, then the literal "download"; a missing extension is
// recovered from note or blob metadata. A blob with no referencing note
// (orphaned) still downloads.
func (s *Service) Download(ctx context.Context, fileID string) (*Download, error) {
	obj, err := s.blobs.Get(ctx, fileID)
	if err != nil {
		return nil, err
	}
	note, err := s.repo.GetByFileID(ctx, fileID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	name := ""
	recordedExt := ""
	if note != nil {
		name = note.StoredFilename
		if name == "" {
			name = note.OriginalFilename
		}
		recordedExt = note.Extension
	}
	if name == "" {
		name = obj.Filename
	}
	if name == "" {
		name = "download"
	}
	if recordedExt == "" {
		recordedExt = obj.Metadata[blob.MetaExtension]
	}
	if ext, ok := filename.Missing(name, recordedExt, obj.ContentType); ok {
		name += ext
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Download{Data: obj.Data, ContentType: contentType, Filename: name}, nil
}

// Delete removes a note's metadata record, attempting blob cleanup first.
// Blob cleanup failures never block the metadata delete; the returned bool
// reports whether a record was actually removed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	note, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if note.FileID != "" {
		if err := s.blobs.Delete(ctx, note.FileID); err != nil {
			s.logger.Warn("blob cleanup failed, deleting metadata anyway",
				"note_id", id, "file_id", note.FileID, "error", err)
		}
	}
	return s.repo.Delete(ctx, id)
}
