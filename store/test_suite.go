package store

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// StoreFactory returns an empty store and a function releasing it.
type StoreFactory func() (CacheableKVStore, func())

// RunStoreSuite checks the behaviour every CacheableKVStore implementation
// must provide: reads through cache layers, write and discard of a cache,
// and ordered iteration merging a cache with its parent.
func RunStoreSuite(t *testing.T, factory StoreFactory) {
	t.Run("read through cache", func(t *testing.T) { readThroughCache(t, factory) })
	t.Run("cache overrides parent", func(t *testing.T) { cacheOverrides(t, factory) })
	t.Run("merged iteration", func(t *testing.T) { mergedIteration(t, factory) })
}

func readThroughCache(t *testing.T, factory StoreFactory) {
	base, release := factory()
	defer release()

	vault, deposit, wallet := []byte("vault"), []byte("deposit"), []byte("wallet")

	AssertValue(t, base, vault, nil)
	require.NoError(t, base.Set(vault, []byte("total")))
	AssertValue(t, base, vault, []byte("total"))

	cache := base.CacheWrap()
	AssertValue(t, cache, vault, []byte("total"))
	require.NoError(t, cache.Set(deposit, []byte("balance")))
	AssertValue(t, cache, deposit, []byte("balance"))
	AssertValue(t, base, deposit, nil)
	require.NoError(t, cache.Write())
	AssertValue(t, base, deposit, []byte("balance"))

	dropped := base.CacheWrap()
	require.NoError(t, dropped.Set(wallet, []byte("coins")))
	require.NoError(t, dropped.Delete(vault))
	dropped.Discard()
	AssertValue(t, base, wallet, nil)
	AssertValue(t, base, vault, []byte("total"))

	removal := base.CacheWrap()
	require.NoError(t, removal.Delete(vault))
	AssertValue(t, removal, vault, nil)
	require.NoError(t, removal.Write())
	AssertValue(t, base, vault, nil)
	AssertValue(t, base, deposit, []byte("balance"))
}

func cacheOverrides(t *testing.T, factory StoreFactory) {
	cases := map[string]struct {
		parent []change
		child  []change
		// Keys missing from want are not checked. A nil value means the
		// key must be absent.
		wantParent map[string][]byte
		wantChild  map[string][]byte
	}{
		"overwrite, delete and insert": {
			parent: []change{set("alice", "10"), set("bob", "20")},
			child:  []change{set("alice", "15"), del("bob"), set("carol", "5")},
			wantParent: map[string][]byte{
				"alice": []byte("10"), "bob": []byte("20"), "carol": nil,
			},
			wantChild: map[string][]byte{
				"alice": []byte("15"), "bob": nil, "carol": []byte("5"),
			},
		},
		"delete then set again": {
			parent:     []change{set("dave", "1")},
			child:      []change{del("dave"), set("dave", "2")},
			wantParent: map[string][]byte{"dave": []byte("1")},
			wantChild:  map[string][]byte{"dave": []byte("2")},
		},
		"set then delete": {
			child:     []change{set("erin", "3"), del("erin")},
			wantChild: map[string][]byte{"erin": nil},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			parent, release := factory()
			defer release()
			applyAll(t, parent, tc.parent)

			child := parent.CacheWrap()
			applyAll(t, child, tc.child)

			for k, v := range tc.wantParent {
				AssertValue(t, parent, []byte(k), v)
			}
			for k, v := range tc.wantChild {
				AssertValue(t, child, []byte(k), v)
			}

			require.NoError(t, child.Write())
			for k, v := range tc.wantChild {
				AssertValue(t, parent, []byte(k), v)
			}
		})
	}
}

func mergedIteration(t *testing.T, factory StoreFactory) {
	// Even accounts live in the parent, every third one is written or
	// removed in the child.
	var parent, child []change
	state := make(map[string][]byte)
	for i := 0; i < 60; i++ {
		key := fmt.Sprintf("acct/%03d", i)
		if i%2 == 0 {
			v := []byte(fmt.Sprintf("p%d", i))
			parent = append(parent, change{key: []byte(key), value: v})
			state[key] = v
		}
		switch i % 3 {
		case 0:
			v := []byte(fmt.Sprintf("c%d", i))
			child = append(child, change{key: []byte(key), value: v})
			state[key] = v
		case 1:
			child = append(child, change{key: []byte(key), del: true})
			delete(state, key)
		}
	}
	all := sortedModels(state)
	require.NotEmpty(t, all)

	key := func(i int) []byte { return all[i].Key }
	queries := []struct {
		start, end []byte
		want       []Model
	}{
		{nil, nil, all},
		{key(5), nil, all[5:]},
		{nil, key(12), all[:12]},
		{key(3), key(9), all[3:9]},
		{[]byte("acct/"), []byte("acct/000"), nil},
		{[]byte("zzz"), nil, nil},
	}

	base, release := factory()
	defer release()
	applyAll(t, base, parent)
	cache := base.CacheWrap()
	applyAll(t, cache, child)

	for i, q := range queries {
		it, err := cache.Iterator(q.start, q.end)
		require.NoError(t, err)
		require.Equal(t, q.want, drain(t, it), "ascending query %d", i)

		it, err = cache.ReverseIterator(q.start, q.end)
		require.NoError(t, err)
		require.Equal(t, reversed(q.want), drain(t, it), "descending query %d", i)
	}
}

// AssertValue fails unless Get returns want and Has reports want != nil.
func AssertValue(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	require.Equal(t, want, got, "value of %q", key)
	has, err := kv.Has(key)
	require.NoError(t, err)
	require.Equal(t, want != nil, has, "presence of %q", key)
}

func set(key, value string) change {
	return change{key: []byte(key), value: []byte(value)}
}

func del(key string) change {
	return change{key: []byte(key), del: true}
}

func applyAll(t testing.TB, out SetDeleter, changes []change) {
	t.Helper()
	for _, c := range changes {
		require.NoError(t, c.apply(out))
	}
}

func drain(t testing.TB, it Iterator) []Model {
	t.Helper()
	defer it.Close()
	var res []Model
	for ; it.Valid(); require.NoError(t, it.Next()) {
		res = append(res, Model{Key: it.Key(), Value: it.Value()})
	}
	return res
}

func sortedModels(state map[string][]byte) []Model {
	res := make([]Model, 0, len(state))
	for k, v := range state {
		res = append(res, Model{Key: []byte(k), Value: v})
	}
	sort.Slice(res, func(i, j int) bool { return bytes.Compare(res[i].Key, res[j].Key) < 0 })
	return res
}

func reversed(models []Model) []Model {
	if models == nil {
		return nil
	}
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}
