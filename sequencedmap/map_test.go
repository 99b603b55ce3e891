package sequencedmap_test

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/speakeasy-api/datamapper/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMap[V any](pairs ...any) *sequencedmap.Map[string, V] {
	m := sequencedmap.New[string, V]()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(V))
	}
	return m
}

func TestMap_Set_KeepsInsertionOrder_Success(t *testing.T) {
	t.Parallel()

	m := sequencedmap.New[string, int]()
	m.Set("zeta", 1)
	m.Set("alpha", 2)
	m.Set("mid", 3)
	m.Set("zeta", 4)

	assert.Equal(t, 3, m.Len(), "re-setting a key should not add an element")
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, slices.Collect(m.Keys()))
	assert.Equal(t, []int{4, 2, 3}, slices.Collect(m.Values()))
}

func TestMap_Set_ZeroValue_Success(t *testing.T) {
	t.Parallel()

	var m sequencedmap.Map[string, int]
	m.Set("a", 1)

	assert.Equal(t, 1, m.GetOrZero("a"))
}

func TestMap_Get_Success(t *testing.T) {
	t.Parallel()

	m := newMap[string]("a", "1", "b", "2")

	v, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = m.Get("c")
	assert.False(t, ok)
	assert.Empty(t, m.GetOrZero("c"))
	assert.True(t, m.Has("a"))
}

func TestMap_NilSafe_Success(t *testing.T) {
	t.Parallel()

	var m *sequencedmap.Map[string, int]
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Has("a"))
	assert.Empty(t, slices.Collect(m.Keys()))
	assert.Empty(t, slices.Collect(m.Values()))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestMap_All_StopsEarly_Success(t *testing.T) {
	t.Parallel()

	m := newMap[int]("a", 1, "b", 2, "c", 3)

	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestMap_NavigateWithKey_Success(t *testing.T) {
	t.Parallel()

	m := newMap[int]("Address", 42)

	v, err := m.NavigateWithKey("Address")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = m.NavigateWithKey("Missing")
	require.Error(t, err)

	var byIndex *sequencedmap.Map[int, string]
	_, err = byIndex.NavigateWithKey("0")
	require.Error(t, err, "only string keyed maps are navigable")
}

func TestMap_MarshalJSON_Success(t *testing.T) {
	t.Parallel()

	m := newMap[int]("z", 1, "a", 2)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2}`, string(data), "keys should keep insertion order")
}
