package regions

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/pkg/repository"
	"github.com/google/uuid"
)

const columns = `id, page_index, content, rect_left, rect_top, rect_right, rect_bottom, modified,
	font_name, font_size, line_spacing, alignment, is_bold, is_italic`

func scanRegion(s repository.Scanner) (overlay.Region, error) {
	var (
		r       overlay.Region
		spacing float64
		align   string
	)
	err := s.Scan(
		&r.ID,
		&r.Page,
		&r.Text,
		&r.Rect.Left,
		&r.Rect.Top,
		&r.Rect.Right,
		&r.Rect.Bottom,
		&r.Modified,
		&r.FontName,
		&r.FontSize,
		&spacing,
		&align,
		&r.Bold,
		&r.Italic,
	)
	r.LineSpacing = overlay.LineSpacing(spacing)
	r.Alignment = overlay.Alignment(align)
	return r, err
}

func scanFont(s repository.Scanner) (Font, error) {
	var f Font
	err := s.Scan(&f.Name, &f.Size, &f.Bold, &f.Italic)
	return f, err
}

// pageCount locks the document row for the rest of tx and returns its page
// count. Holding the lock serializes ordinal assignment.
func pageCount(ctx context.Context, tx *sql.Tx, documentID uuid.UUID) (int, error) {
	var count int
	err := tx.QueryRowContext(ctx,
		`SELECT page_count FROM documents WHERE id = $1 FOR UPDATE`, documentID,
	).Scan(&count)
	if err != nil {
		return 0, repository.MapError(err, ErrDocumentNotFound, ErrDuplicate)
	}
	return count, nil
}

func nextOrdinal(ctx context.Context, tx *sql.Tx, documentID uuid.UUID) (int, error) {
	var next int
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(ordinal), 0) + 1 FROM regions WHERE document_id = $1`, documentID,
	).Scan(&next)
	return next, err
}

// Create inserts drafts for a document inside tx and returns the stored
// regions. The document row must already exist in tx.
func Create(ctx context.Context, tx *sql.Tx, documentID uuid.UUID, drafts []Draft) ([]overlay.Region, error) {
	count, err := pageCount(ctx, tx, documentID)
	if err != nil {
		return nil, err
	}

	ordinal, err := nextOrdinal(ctx, tx, documentID)
	if err != nil {
		return nil, fmt.Errorf("next ordinal: %w", err)
	}

	q := `INSERT INTO regions(id, document_id, page_index, ordinal, content,
			rect_left, rect_top, rect_right, rect_bottom, modified,
			font_name, font_size, line_spacing, alignment, is_bold, is_italic)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + columns

	out := make([]overlay.Region, 0, len(drafts))
	for _, d := range drafts {
		if d.Page < 0 || d.Page >= count {
			return nil, fmt.Errorf("%w: %d of %d", ErrInvalidPage, d.Page, count)
		}

		region, err := repository.QueryOne(ctx, tx, q, []any{
			NewID(documentID, ordinal), documentID, d.Page, ordinal, d.Text,
			d.Rect.Left, d.Rect.Top, d.Rect.Right, d.Rect.Bottom, d.Modified,
			d.Attributes.FontName, d.Attributes.FontSize, float64(d.Attributes.LineSpacing),
			string(d.Attributes.Alignment), d.Attributes.Bold, d.Attributes.Italic,
		}, scanRegion)
		if err != nil {
			return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		out = append(out, region)
		ordinal++
	}
	return out, nil
}

// Transform rewrites the page and rectangle of every region on pages lo
// through hi. Identity and content are preserved.
func Transform(ctx context.Context, tx *sql.Tx, documentID uuid.UUID, lo, hi int, fn func(overlay.Region) overlay.Region) (int, error) {
	if _, err := pageCount(ctx, tx, documentID); err != nil {
		return 0, err
	}

	affected, err := repository.QueryMany(ctx, tx,
		`SELECT `+columns+` FROM regions
		WHERE document_id = $1 AND page_index BETWEEN $2 AND $3`,
		[]any{documentID, lo, hi}, scanRegion)
	if err != nil {
		return 0, fmt.Errorf("load regions: %w", err)
	}

	q := `UPDATE regions
		SET page_index = $1, rect_left = $2, rect_top = $3, rect_right = $4, rect_bottom = $5
		WHERE id = $6`

	for _, r := range affected {
		next := fn(r)
		rect := next.Rect.Normalize()
		if err := repository.ExecExpectOne(ctx, tx, q,
			next.Page, rect.Left, rect.Top, rect.Right, rect.Bottom, r.ID,
		); err != nil {
			return 0, fmt.Errorf("update region %s: %w", r.ID, err)
		}
	}
	return len(affected), nil
}

// Modified returns the regions whose text differs from the source document.
func Modified(ctx context.Context, q repository.Querier, documentID uuid.UUID) ([]overlay.Region, error) {
	return repository.QueryMany(ctx, q,
		`SELECT `+columns+` FROM regions
		WHERE document_id = $1 AND modified
		ORDER BY page_index, ordinal`,
		[]any{documentID}, scanRegion)
}
