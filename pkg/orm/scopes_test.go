package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymstack/gymcore/pkg/database"
)

type row struct {
	ID    uint
	GymID uint
}

func TestScopes(t *testing.T) {
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, db.AutoMigrate(&row{}))

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&row{GymID: uint(1 + i%2)}).Error)
	}

	var gym1 []row
	require.NoError(t, db.Scopes(ForGym(1)).Find(&gym1).Error)
	assert.Len(t, gym1, 3)
	for _, r := range gym1 {
		assert.Equal(t, uint(1), r.GymID)
	}

	var page []row
	require.NoError(t, db.Scopes(Newest, Paginate(Page{Number: 2, Limit: 2})).Find(&page).Error)
	require.Len(t, page, 2)
	assert.Equal(t, []uint{3, 2}, []uint{page[0].ID, page[1].ID})

	var all []row
	require.NoError(t, db.Scopes(Paginate(Page{Limit: 1000})).Find(&all).Error)
	assert.Len(t, all, 5)
}
