package orm

import (
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
)

func TestBucketNames(t *testing.T) {
	assert.Panics(t, func() { NewBucket("a") })
	assert.Panics(t, func() { NewBucket("Upper") })
	b := NewBucket("vaults")
	assert.Equal(t, "vaults", b.Name())
}

func TestDBKeyDoesNotShareMemory(t *testing.T) {
	b := NewBucket("cnts")
	k1 := b.DBKey([]byte("ABC"))
	k2 := b.DBKey([]byte("LED"))
	assert.Equal(t, "cnts:ABC", string(k1))
	assert.Equal(t, "cnts:LED", string(k2))
}
