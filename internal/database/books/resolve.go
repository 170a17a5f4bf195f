package books

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// resolution holds the ids a draft's references resolved to.
type resolution struct {
	locationID  *uint
	authorIDs   []uint
	categoryIDs []uint
}

// resolve turns every reference of draft into a row id, creating rows for
// references that carry only a name. Authors and categories are resolved
// concurrently; each goroutine writes only its own slot.
func (r *Repository) resolve(ctx context.Context, draft entities.BookDraft) (resolution, error) {
	locationID, err := r.resolveLocation(ctx, draft.Location)
	if err != nil {
		return resolution{}, err
	}

	authors := usableRefs(draft.Authors)
	categories := usableRefs(draft.Categories)
	res := resolution{
		locationID:  locationID,
		authorIDs:   make([]uint, len(authors)),
		categoryIDs: make([]uint, len(categories)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range authors {
		g.Go(func() error {
			id, err := findOrCreate[entities.Author](gctx, r.db, "author", ref)
			if err != nil {
				return err
			}
			res.authorIDs[i] = id
			return nil
		})
	}
	for i, ref := range categories {
		g.Go(func() error {
			id, err := findOrCreate[entities.Category](gctx, r.db, "category", ref)
			if err != nil {
				return err
			}
			res.categoryIDs[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return resolution{}, err
	}
	return res, nil
}

// resolveLocation returns nil for a location without a name.
func (r *Repository) resolveLocation(ctx context.Context, ref entities.LocationRef) (*uint, error) {
	if strings.TrimSpace(ref.Name) == "" {
		return nil, nil
	}
	id, err := findOrCreate[entities.Location](ctx, r.db, "location", ref)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// findOrCreate reuses ref.ID when set and otherwise inserts a new row named
// ref.Name. Names are never looked up: two refs with the same new name give
// two rows.
func findOrCreate[E any, P interface {
	*E
	entities.Named
}](ctx context.Context, db *gorm.DB, kind string, ref entities.Ref) (uint, error) {
	if ref.ID != nil {
		var count int64
		if err := db.WithContext(ctx).Model(P(new(E))).Where("id = ?", *ref.ID).Count(&count).Error; err != nil {
			return 0, fmt.Errorf("look up %s %d: %w", kind, *ref.ID, err)
		}
		if count == 0 {
			return 0, fmt.Errorf("%w: %s %d", ErrReferenceNotFound, kind, *ref.ID)
		}
		return *ref.ID, nil
	}

	entity := P(new(E))
	entity.SetName(ref.Name)
	if err := db.WithContext(ctx).Create(entity).Error; err != nil {
		return 0, fmt.Errorf("create %s %q: %w", kind, ref.Name, err)
	}
	return entity.PrimaryKey(), nil
}

// usableRefs drops refs that neither point at a row nor name a new one,
// such as the blank row an edit form keeps for adding another author.
func usableRefs(refs []entities.Ref) []entities.Ref {
	usable := make([]entities.Ref, 0, len(refs))
	for _, ref := range refs {
		if ref.ID == nil && strings.TrimSpace(ref.Name) == "" {
			continue
		}
		usable = append(usable, ref)
	}
	return usable
}
