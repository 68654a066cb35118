package item

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit-rental/service-booking/internal/platform/apperror"
)

func TestNewItem(t *testing.T) {
	it, err := NewItem(1, "Drill", "Cordless drill", true, time.Now())
	require.NoError(t, err)
	assert.True(t, it.IsOwnedBy(1))
	assert.Equal(t, Snapshot{OwnerID: 1, Name: "Drill", Available: true}, it.Snapshot())

	_, err = NewItem(1, " ", "x", true, time.Now())
	assert.True(t, apperror.IsValidation(err))

	_, err = NewItem(1, "Drill", "", true, time.Now())
	assert.True(t, apperror.IsValidation(err))
}

func TestItem_Apply(t *testing.T) {
	it := Reconstruct(3, 1, "Drill", "Cordless drill", true, 1, time.Time{}, time.Time{})

	off := false
	require.NoError(t, it.Apply(Patch{Available: &off}, time.Now()))
	assert.False(t, it.Available())
	assert.Equal(t, "Drill", it.Name())
	assert.Equal(t, int64(2), it.Version())

	blank := ""
	assert.Error(t, it.Apply(Patch{Name: &blank}, time.Now()))
}
