package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string
	Name string
}

func TestCollection_InsertKeepsOrder(t *testing.T) {
	c := NewCollection[item]()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, c.Insert(id, &item{ID: id}))
	}

	var ids []string
	for _, it := range c.List() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
	assert.Equal(t, 3, c.Len())
}

func TestCollection_InsertRejectsDuplicateAndEmptyID(t *testing.T) {
	c := NewCollection[item]()
	require.NoError(t, c.Insert("a", &item{ID: "a"}))

	err := c.Insert("a", &item{ID: "a", Name: "other"})
	require.ErrorIs(t, err, ErrDuplicateID)
	require.Error(t, c.Insert("", &item{}))

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Empty(t, got.Name)
}

func TestCollection_ReplaceKeepsPosition(t *testing.T) {
	c := NewCollection[item]()
	require.NoError(t, c.Insert("a", &item{ID: "a"}))
	require.NoError(t, c.Insert("b", &item{ID: "b"}))

	assert.True(t, c.Replace("a", &item{ID: "a", Name: "renamed"}))
	assert.False(t, c.Replace("zz", &item{ID: "zz"}))

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "renamed", list[0].Name)
	assert.False(t, c.Has("zz"))
}

func TestCollection_Delete(t *testing.T) {
	c := NewCollection[item]()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, c.Insert(id, &item{ID: id}))
	}

	assert.True(t, c.Delete("b"))
	assert.False(t, c.Delete("b"))

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "c", list[1].ID)
	_, ok := c.Get("b")
	assert.False(t, ok)
}

func TestCollection_FilterAndAny(t *testing.T) {
	c := NewCollection[item]()
	require.NoError(t, c.Insert("a", &item{ID: "a", Name: "x"}))
	require.NoError(t, c.Insert("b", &item{ID: "b", Name: "y"}))
	require.NoError(t, c.Insert("c", &item{ID: "c", Name: "x"}))

	got := c.Filter(func(i *item) bool { return i.Name == "x" })
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}
