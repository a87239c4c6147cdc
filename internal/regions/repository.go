package regions

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/pkg/geometry"
	"github.com/JaimeStill/pdf-editor/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a region repository backed by db.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "regions"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) List(ctx context.Context, documentID uuid.UUID, page *int) ([]overlay.Region, error) {
	if err := r.checkPage(ctx, documentID, page); err != nil {
		return nil, err
	}

	q := `SELECT ` + columns + ` FROM regions WHERE document_id = $1`
	args := []any{documentID}
	if page != nil {
		q += ` AND page_index = $2`
		args = append(args, *page)
	}
	q += ` ORDER BY page_index, ordinal`

	regions, err := repository.QueryMany(ctx, r.db, q, args, scanRegion)
	if err != nil {
		return nil, fmt.Errorf("query regions: %w", err)
	}
	return regions, nil
}

func (r *repo) Search(ctx context.Context, documentID uuid.UUID, query string) ([]overlay.Region, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if err := r.checkPage(ctx, documentID, nil); err != nil {
		return nil, err
	}

	regions, err := repository.QueryMany(ctx, r.db,
		`SELECT `+columns+` FROM regions
		WHERE document_id = $1 AND strpos(lower(content), lower($2)) > 0
		ORDER BY page_index, ordinal`,
		[]any{documentID, query}, scanRegion)
	if err != nil {
		return nil, fmt.Errorf("search regions: %w", err)
	}
	return regions, nil
}

func (r *repo) ReplaceContent(ctx context.Context, documentID uuid.UUID, id overlay.ID, text string) (*overlay.Region, error) {
	q := `UPDATE regions SET content = $1, modified = TRUE
		WHERE document_id = $2 AND id = $3
		RETURNING ` + columns

	region, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (overlay.Region, error) {
		region, err := repository.QueryOne(ctx, tx, q, []any{text, documentID, id}, scanRegion)
		if err != nil {
			return region, err
		}
		return region, touch(ctx, tx, documentID)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("region content replaced", "document", documentID, "region", id, "length", len(text))
	return &region, nil
}

func (r *repo) SetProperty(ctx context.Context, documentID uuid.UUID, id overlay.ID, property, value string) (*overlay.Region, error) {
	change, err := overlay.ParseChange(property, value)
	if err != nil {
		return nil, err
	}

	region, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (overlay.Region, error) {
		current, err := repository.QueryOne(ctx, tx,
			`SELECT `+columns+` FROM regions WHERE document_id = $1 AND id = $2 FOR UPDATE`,
			[]any{documentID, id}, scanRegion)
		if err != nil {
			return current, err
		}

		attrs := current.Attributes.With(change)
		updated, err := repository.QueryOne(ctx, tx,
			`UPDATE regions SET font_size = $1, line_spacing = $2, alignment = $3
			WHERE id = $4
			RETURNING `+columns,
			[]any{attrs.FontSize, float64(attrs.LineSpacing), string(attrs.Alignment), id},
			scanRegion)
		if err != nil {
			return updated, err
		}
		return updated, touch(ctx, tx, documentID)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("region property set", "document", documentID, "region", id, "property", change.Property(), "value", change.Value())
	return &region, nil
}

func (r *repo) Insert(ctx context.Context, documentID uuid.UUID, cmd InsertCommand) (*overlay.Region, error) {
	if strings.TrimSpace(cmd.Text) == "" {
		return nil, ErrEmptyText
	}
	if cmd.X < 0 || cmd.Y < 0 {
		return nil, fmt.Errorf("%w: (%g, %g)", ErrInvalidPoint, cmd.X, cmd.Y)
	}

	attrs, err := cmd.Attributes()
	if err != nil {
		return nil, err
	}

	draft := Draft{
		Page:       cmd.Page,
		Text:       cmd.Text,
		Rect:       geometry.TextBox(geometry.Point{X: cmd.X, Y: cmd.Y}, cmd.Text, attrs.FontSize, float64(attrs.LineSpacing)),
		Modified:   true,
		Attributes: attrs,
	}

	created, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]overlay.Region, error) {
		created, err := Create(ctx, tx, documentID, []Draft{draft})
		if err != nil {
			return nil, err
		}
		return created, touch(ctx, tx, documentID)
	})
	if err != nil {
		return nil, err
	}

	region := created[0]
	r.logger.Info("region inserted", "document", documentID, "region", region.ID, "page", region.Page)
	return &region, nil
}

func (r *repo) Delete(ctx context.Context, documentID uuid.UUID, id overlay.ID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(ctx, tx,
			`DELETE FROM regions WHERE document_id = $1 AND id = $2`, documentID, id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, touch(ctx, tx, documentID)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("region deleted", "document", documentID, "region", id)
	return nil
}

func (r *repo) Fonts(ctx context.Context, documentID uuid.UUID, page *int) ([]Font, error) {
	if err := r.checkPage(ctx, documentID, page); err != nil {
		return nil, err
	}

	q := `SELECT DISTINCT font_name, font_size, is_bold, is_italic FROM regions WHERE document_id = $1`
	args := []any{documentID}
	if page != nil {
		q += ` AND page_index = $2`
		args = append(args, *page)
	}
	q += ` ORDER BY font_name, font_size, is_bold, is_italic`

	fonts, err := repository.QueryMany(ctx, r.db, q, args, scanFont)
	if err != nil {
		return nil, fmt.Errorf("query fonts: %w", err)
	}
	return fonts, nil
}

// checkPage verifies the document exists and, when page is non-nil, that
// the page is in range.
func (r *repo) checkPage(ctx context.Context, documentID uuid.UUID, page *int) error {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT page_count FROM documents WHERE id = $1`, documentID,
	).Scan(&count)
	if err != nil {
		return repository.MapError(err, ErrDocumentNotFound, ErrDuplicate)
	}

	if page != nil && (*page < 0 || *page >= count) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidPage, *page, count)
	}
	return nil
}

func touch(ctx context.Context, tx *sql.Tx, documentID uuid.UUID) error {
	return repository.ExecExpectOne(ctx, tx,
		`UPDATE documents SET updated_at = NOW() WHERE id = $1`, documentID)
}
