package praise

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSizes(t *testing.T) {
	assert.Len(t, Phrases(), 10)
	assert.Len(t, Hints(), 7)
}

func TestCatalogCopiesAreIndependent(t *testing.T) {
	p := Phrases()
	p[0] = "changed"
	assert.NotEqual(t, "changed", Phrases()[0])
}

func TestSelectWithoutHints(t *testing.T) {
	s := NewSelector(WithSource(rand.NewPCG(1, 2)))
	catalog := Phrases()

	for i := 0; i < 200; i++ {
		assert.Contains(t, catalog, s.Select())
	}
}

func TestSelectWithHints(t *testing.T) {
	s := NewSelector(WithHints(true), WithSource(rand.NewPCG(3, 4)))

	for i := 0; i < 200; i++ {
		msg := s.Select()
		require.True(t, IsCatalogMessage(msg), "unexpected message %q", msg)
		assert.Equal(t, 1, strings.Count(msg, "（"))
		assert.True(t, strings.HasSuffix(msg, "、いい感じ）"))

		hits := 0
		for _, h := range Hints() {
			if strings.Contains(msg, "（"+h+"、") {
				hits++
			}
		}
		assert.Equal(t, 1, hits, "exactly one hint embedded in %q", msg)
	}
}

func TestSelectCoversCatalog(t *testing.T) {
	s := NewSelector(WithSource(rand.NewPCG(5, 6)))
	seen := map[string]bool{}
	for i := 0; i < 2000; i++ {
		seen[s.Select()] = true
	}
	assert.Len(t, seen, 10)
}

func TestSameSourceSameSequence(t *testing.T) {
	a := NewSelector(WithHints(true), WithSource(rand.NewPCG(7, 8)))
	b := NewSelector(WithHints(true), WithSource(rand.NewPCG(7, 8)))
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Select(), b.Select())
	}
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "今のペース、いい感じ。（会議、いい感じ）", Compose("今のペース、いい感じ。", "会議"))
}

func TestIsCatalogMessage(t *testing.T) {
	assert.True(t, IsCatalogMessage(Phrases()[3]))
	assert.True(t, IsCatalogMessage(Compose(Phrases()[0], Hints()[6])))
	assert.False(t, IsCatalogMessage(Compose(Phrases()[0], "昼寝")))
	assert.False(t, IsCatalogMessage("hello"))
	assert.False(t, IsCatalogMessage(Phrases()[0]+"!"))
}
