package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type keyed struct{ name string }

func TestMemoGetCachesBySameKey(t *testing.T) {
	var m Memo[*keyed, int]
	k := &keyed{name: "a"}
	calls := 0
	compute := func(*keyed) int {
		calls++
		return calls * 10
	}

	assert.Equal(t, 10, m.Get(k, compute))
	assert.Equal(t, 10, m.Get(k, compute))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, m.Computes())
}

func TestMemoGetRecomputesOnNewKey(t *testing.T) {
	var m Memo[*keyed, string]
	a := &keyed{name: "a"}
	b := &keyed{name: "a"} // equal contents, different identity

	assert.Equal(t, "a-1", m.Get(a, func(k *keyed) string { return k.name + "-1" }))
	assert.Equal(t, "a-2", m.Get(b, func(k *keyed) string { return k.name + "-2" }))
	assert.Equal(t, "a-3", m.Get(a, func(k *keyed) string { return k.name + "-3" }))
	assert.Equal(t, 3, m.Computes())
}

func TestMemoPeekAndReset(t *testing.T) {
	var m Memo[string, int]
	_, ok := m.Peek()
	assert.False(t, ok)

	m.Get("k", func(string) int { return 7 })
	v, ok := m.Peek()
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	m.Reset()
	_, ok = m.Peek()
	assert.False(t, ok)
}

func TestSame(t *testing.T) {
	p := &keyed{}
	fn := func() {}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", p, nil, false},
		{"same pointer", p, p, true},
		{"distinct pointers", p, &keyed{}, false},
		{"equal strings", "x", "x", true},
		{"different types", 1, int64(1), false},
		{"func never same", fn, fn, false},
		{"map never same", map[string]int{}, map[string]int{}, false},
		{"struct holding slice", struct{ s []int }{}, struct{ s []int }{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Same(tt.a, tt.b))
		})
	}
}
