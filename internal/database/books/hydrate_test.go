package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }

func TestHydrate_CollapsesCrossProduct(t *testing.T) {
	rows := []bookRow{
		{ID: 7, Name: "B", AuthorID: uintPtr(2), AuthorName: strPtr("Second"), CategoryID: uintPtr(10), CategoryName: strPtr("X")},
		{ID: 3, Name: "A"},
		{ID: 7, Name: "B", AuthorID: uintPtr(2), AuthorName: strPtr("Second"), CategoryID: uintPtr(11), CategoryName: strPtr("Y")},
		{ID: 7, Name: "B", AuthorID: uintPtr(1), AuthorName: strPtr("First"), CategoryID: uintPtr(10), CategoryName: strPtr("X")},
		{ID: 7, Name: "B", AuthorID: uintPtr(1), AuthorName: strPtr("First"), CategoryID: uintPtr(11), CategoryName: strPtr("Y")},
	}

	books := hydrate(rows)
	require.Len(t, books, 2)

	assert.Equal(t, uint(7), books[0].ID)
	assert.Equal(t, []entities.Author{{ID: 2, Name: "Second"}, {ID: 1, Name: "First"}}, books[0].Authors)
	assert.Equal(t, []entities.Category{{ID: 10, Name: "X"}, {ID: 11, Name: "Y"}}, books[0].Categories)

	assert.Equal(t, uint(3), books[1].ID)
	assert.Equal(t, []entities.Author{}, books[1].Authors)
	assert.Equal(t, []entities.Category{}, books[1].Categories)
	assert.Nil(t, books[1].Location)
}

func TestHydrate_LocationNeedsIDAndName(t *testing.T) {
	books := hydrate([]bookRow{
		{ID: 1, Name: "Has", LocationID: uintPtr(4), LocationName: strPtr("Shelf")},
		{ID: 2, Name: "Dangling", BookLocationID: uintPtr(9)},
		{ID: 3, Name: "Half", LocationID: uintPtr(5)},
	})
	require.Len(t, books, 3)

	assert.Equal(t, &entities.Location{ID: 4, Name: "Shelf"}, books[0].Location)
	assert.Nil(t, books[1].Location)
	assert.Equal(t, uint(9), *books[1].LocationID)
	assert.Nil(t, books[2].Location)
}

func TestHydrate_SkipsHalfNullRelations(t *testing.T) {
	books := hydrate([]bookRow{
		{ID: 1, Name: "Odd", AuthorID: uintPtr(1), CategoryName: strPtr("No id")},
	})
	require.Len(t, books, 1)
	assert.Empty(t, books[0].Authors)
	assert.Empty(t, books[0].Categories)
}

func TestHydrate_Empty(t *testing.T) {
	assert.Empty(t, hydrate(nil))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off`, escapeLike("50% off"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
