package viewstate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type remark struct {
	ID   string
	Text string
}

func newRemarks(values ...remark) *Collection[remark] {
	c := NewCollection(func(r remark) string { return r.ID })
	c.Replace(values)
	return c
}

func TestApplyPlaceholderGoesOnTop(t *testing.T) {
	c := newRemarks(remark{ID: "R1", Text: "first"})

	key := c.ApplyPlaceholder(remark{Text: "draft"})

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, key, items[0].Key)
	assert.True(t, items[0].Pending)
	assert.True(t, strings.HasPrefix(key, "local-"))
	assert.True(t, c.HasPending())
}

func TestReplaceDropsPlaceholdersAndTakesServerCopy(t *testing.T) {
	c := newRemarks(remark{ID: "R1", Text: "first"})
	c.ApplyPlaceholder(remark{Text: "draft"})

	c.Replace([]remark{
		{ID: "R2", Text: "draft (saved)"},
		{ID: "R1", Text: "first, edited elsewhere"},
	})

	assert.Equal(t, []remark{
		{ID: "R2", Text: "draft (saved)"},
		{ID: "R1", Text: "first, edited elsewhere"},
	}, c.Values())
	assert.False(t, c.HasPending())
}

func TestStageAndRevert(t *testing.T) {
	c := newRemarks(remark{ID: "R1", Text: "scheduled"})

	require.True(t, c.Stage("R1", remark{ID: "R1", Text: "in progress"}))
	require.True(t, c.Stage("R1", remark{ID: "R1", Text: "completed"}))
	assert.True(t, c.Items()[0].Pending)

	c.Revert("R1")
	assert.Equal(t, []remark{{ID: "R1", Text: "scheduled"}}, c.Values())
	assert.False(t, c.HasPending())
}

func TestRevertPlaceholderRemovesIt(t *testing.T) {
	c := newRemarks(remark{ID: "R1"})
	key := c.ApplyPlaceholder(remark{Text: "draft"})

	c.Revert(key)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "R1", c.Items()[0].Key)
}

func TestStageUnknownKey(t *testing.T) {
	assert.False(t, newRemarks().Stage("nope", remark{}))
}

func TestReplaceForgetsStagedOriginals(t *testing.T) {
	c := newRemarks(remark{ID: "R1", Text: "old"})
	c.Stage("R1", remark{ID: "R1", Text: "new"})
	c.Replace([]remark{{ID: "R1", Text: "server"}})

	c.Revert("R1")
	assert.Equal(t, []remark{{ID: "R1", Text: "server"}}, c.Values())
}
