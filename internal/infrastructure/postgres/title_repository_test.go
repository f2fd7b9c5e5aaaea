package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// titleRow is a canned result in titleSelect column order.
type titleRow struct {
	id          int64
	name        string
	year        int
	description string
	createdAt   time.Time
	catID       *int64
	catName     *string
	catSlug     *string
	rating      *float64
}

func (r titleRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.id
	*(dest[1].(*string)) = r.name
	*(dest[2].(*int)) = r.year
	*(dest[3].(*string)) = r.description
	*(dest[4].(*time.Time)) = r.createdAt
	*(dest[5].(**int64)) = r.catID
	*(dest[6].(**string)) = r.catName
	*(dest[7].(**string)) = r.catSlug
	*(dest[8].(**float64)) = r.rating
	return nil
}

func TestScanTitleNoReviews(t *testing.T) {
	// AVG over zero reviews is NULL, not zero
	got, err := scanTitle(titleRow{id: 1, name: "Unreviewed", year: 1990})
	require.NoError(t, err)
	assert.Nil(t, got.Rating)
	assert.Nil(t, got.Category)
}

func TestScanTitleAveragedScores(t *testing.T) {
	// scores 8 and 6 average to exactly 7.0
	rating := 7.0
	catID := int64(3)
	catName := "Films"
	catSlug := "films"

	got, err := scanTitle(titleRow{
		id: 1, name: "Reviewed", year: 1990,
		catID: &catID, catName: &catName, catSlug: &catSlug,
		rating: &rating,
	})
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 7.0, *got.Rating)
	require.NotNil(t, got.Category)
	assert.Equal(t, "films", got.Category.Slug)
}

func TestTitleSelectCarriesRatingAggregate(t *testing.T) {
	// Get and List both concatenate onto this one fragment, so the
	// aggregate a list row shows can never differ from the detail view.
	assert.Contains(t, titleSelect, "AVG(r.score)::float8")
	assert.Contains(t, titleSelect, "LEFT JOIN reviews r ON r.title_id = t.id")
	assert.Contains(t, titleSelect, "LEFT JOIN categories c ON c.id = t.category_id")
}
