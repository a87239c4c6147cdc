package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/JaimeStill/pdf-editor/internal/extract"
	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/internal/regions"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
	"github.com/JaimeStill/pdf-editor/pkg/pagination"
	"github.com/JaimeStill/pdf-editor/pkg/query"
	"github.com/JaimeStill/pdf-editor/pkg/repository"
	"github.com/JaimeStill/pdf-editor/pkg/storage"
	"github.com/google/uuid"
)

// Extractor reads the text blocks of a stored PDF.
type Extractor interface {
	File(path string) ([]extract.Page, error)
}

type repo struct {
	db         *sql.DB
	storage    storage.System
	extractor  Extractor
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a document repository with database and blob storage integration.
func New(db *sql.DB, storage storage.System, extractor Extractor, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		storage:    storage,
		extractor:  extractor,
		logger:     logger.With("system", "documents"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename").
		OrderByFields(page.Sort)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	return find(ctx, r.db, id, false)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Document, error) {
	pages, err := inspect(cmd.Data)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	storageKey := buildStorageKey(id, cmd.Filename)

	if err := r.storage.Store(ctx, storageKey, cmd.Data); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	drafts := r.extract(ctx, storageKey, len(pages))

	q := `INSERT INTO documents(id, filename, size_bytes, page_count, storage_key)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id, filename, size_bytes, page_count, storage_key, created_at, updated_at`

	doc, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		doc, err := repository.QueryOne(ctx, tx, q, []any{
			id, cmd.Filename, len(cmd.Data), len(pages), storageKey,
		}, scanDocument)
		if err != nil {
			return doc, err
		}

		if err := insertPages(ctx, tx, id, 0, pages); err != nil {
			return doc, err
		}
		doc.Pages = pages

		if _, err := regions.Create(ctx, tx, id, drafts); err != nil {
			return doc, fmt.Errorf("create regions: %w", err)
		}
		return doc, nil
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, storageKey); delErr != nil {
			r.logger.Error("cleanup failed after db error", "storage_key", storageKey, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document created",
		"id", doc.ID,
		"filename", doc.Filename,
		"pages", doc.PageCount,
		"regions", len(drafts),
	)
	return &doc, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := r.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	q := `DELETE FROM documents WHERE id = $1`
	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, id)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.storage.Delete(ctx, doc.StorageKey); err != nil {
		r.logger.Error("storage cleanup failed", "storage_key", doc.StorageKey, "error", err)
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}

func (r *repo) Rotate(ctx context.Context, id uuid.UUID, page, degrees int) (*Document, error) {
	if !slices.Contains(Rotations, degrees) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRotation, degrees)
	}

	doc, err := r.restructure(ctx, id, func(tx *sql.Tx, doc *Document, data []byte) ([]byte, error) {
		if err := checkPage(doc, page); err != nil {
			return nil, err
		}

		rotated, err := rotatePage(data, page, degrees)
		if err != nil {
			return nil, err
		}

		p := doc.Pages[page]
		if _, err := regions.Transform(ctx, tx, id, page, page, func(rg overlay.Region) overlay.Region {
			rg.Rect = geometry.Rotate(rg.Rect, p.Width, p.Height, degrees)
			return rg
		}); err != nil {
			return nil, err
		}

		width, height := p.Width, p.Height
		if degrees != 180 {
			width, height = height, width
		}
		if err := repository.ExecExpectOne(ctx, tx,
			`UPDATE pages SET width = $1, height = $2, rotation = (rotation + $3) % 360
			WHERE document_id = $4 AND page_index = $5`,
			width, height, degrees, id, page,
		); err != nil {
			return nil, fmt.Errorf("update page: %w", err)
		}
		return rotated, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("page rotated", "id", id, "page", page, "degrees", degrees)
	return doc, nil
}

func (r *repo) MovePage(ctx context.Context, id uuid.UUID, from, to int) (*Document, error) {
	doc, err := r.restructure(ctx, id, func(tx *sql.Tx, doc *Document, data []byte) ([]byte, error) {
		if err := checkPage(doc, from); err != nil {
			return nil, err
		}
		if err := checkPage(doc, to); err != nil {
			return nil, err
		}
		if from == to {
			return nil, nil
		}

		moved, err := reorder(data, pageOrder(doc.PageCount, from, to))
		if err != nil {
			return nil, err
		}

		lo, hi := min(from, to), max(from, to)

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM pages WHERE document_id = $1 AND page_index BETWEEN $2 AND $3`, id, lo, hi,
		); err != nil {
			return nil, fmt.Errorf("clear pages: %w", err)
		}

		shifted := make([]Page, hi-lo+1)
		for old := lo; old <= hi; old++ {
			shifted[newIndex(old, from, to)-lo] = doc.Pages[old]
		}
		if err := insertPages(ctx, tx, id, lo, shifted); err != nil {
			return nil, err
		}

		if _, err := regions.Transform(ctx, tx, id, lo, hi, func(rg overlay.Region) overlay.Region {
			rg.Page = newIndex(rg.Page, from, to)
			return rg
		}); err != nil {
			return nil, err
		}
		return moved, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("page moved", "id", id, "from", from, "to", to)
	return doc, nil
}

func (r *repo) Export(ctx context.Context, id uuid.UUID) ([]byte, *Document, error) {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := r.storage.Retrieve(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve file: %w", err)
	}

	modified, err := regions.Modified(ctx, r.db, id)
	if err != nil {
		return nil, nil, fmt.Errorf("query modified regions: %w", err)
	}

	out, err := stamp(data, doc.Pages, modified)
	if err != nil {
		return nil, nil, err
	}

	r.logger.Info("document exported", "id", id, "modified_regions", len(modified), "size", len(out))
	return out, doc, nil
}

// restructure runs fn with the document row locked and stores the PDF it
// returns. A nil result leaves the stored file and the document untouched.
func (r *repo) restructure(ctx context.Context, id uuid.UUID, fn func(tx *sql.Tx, doc *Document, data []byte) ([]byte, error)) (*Document, error) {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		doc, err := find(ctx, tx, id, true)
		if err != nil {
			return struct{}{}, err
		}

		data, err := r.storage.Retrieve(ctx, doc.StorageKey)
		if err != nil {
			return struct{}{}, fmt.Errorf("retrieve file: %w", err)
		}

		out, err := fn(tx, doc, data)
		if err != nil || out == nil {
			return struct{}{}, err
		}

		if err := repository.ExecExpectOne(ctx, tx,
			`UPDATE documents SET size_bytes = $1, updated_at = NOW() WHERE id = $2`, len(out), id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, r.storage.Store(ctx, doc.StorageKey, out)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return r.Find(ctx, id)
}

// extract reads the stored file's text blocks into region drafts. A file
// without a readable text layer yields no regions rather than an error.
func (r *repo) extract(ctx context.Context, storageKey string, pageCount int) []regions.Draft {
	path, err := r.storage.Path(ctx, storageKey)
	if err != nil {
		r.logger.Warn("text extraction skipped", "storage_key", storageKey, "error", err)
		return nil
	}

	pages, err := r.extractor.File(path)
	if err != nil {
		r.logger.Warn("text extraction failed", "storage_key", storageKey, "error", err)
		return nil
	}

	var drafts []regions.Draft
	for i, p := range pages {
		if i >= pageCount {
			break
		}
		for _, b := range p.Blocks {
			drafts = append(drafts, regions.Draft{
				Page:       i,
				Text:       b.Text,
				Rect:       b.Rect,
				Attributes: b.Attributes,
			})
		}
	}
	return drafts
}

func find(ctx context.Context, q repository.Querier, id uuid.UUID, lock bool) (*Document, error) {
	sqlText, args := query.NewBuilder(projection, defaultSort).BuildSingle("ID", id)
	if lock {
		sqlText += " FOR UPDATE"
	}

	doc, err := repository.QueryOne(ctx, q, sqlText, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	doc.Pages, err = repository.QueryMany(ctx, q,
		`SELECT width, height, rotation FROM pages WHERE document_id = $1 ORDER BY page_index`,
		[]any{id}, scanPage)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	return &doc, nil
}

func insertPages(ctx context.Context, tx *sql.Tx, id uuid.UUID, start int, pages []Page) error {
	q := `INSERT INTO pages(document_id, page_index, width, height, rotation) VALUES($1, $2, $3, $4, $5)`
	for i, p := range pages {
		if _, err := tx.ExecContext(ctx, q, id, start+i, p.Width, p.Height, p.Rotation); err != nil {
			return fmt.Errorf("insert page %d: %w", start+i, err)
		}
	}
	return nil
}

func checkPage(doc *Document, page int) error {
	if page < 0 || page >= doc.PageCount {
		return fmt.Errorf("%w: %d of %d", ErrInvalidPage, page, doc.PageCount)
	}
	return nil
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("documents/%s/%s", id.String(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "document.pdf"
	}
	replacer := strings.NewReplacer(
		" ", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
