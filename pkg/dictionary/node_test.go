package dictionary_test

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lexicon/pkg/dictionary"
)

const enDocument = `{
	"culture": "en",
	"dictionary": {"greeting": "Hello", "farewell": "Goodbye"},
	"constants": {"currency": "GBP"}
}`

const enPlural = `{
	"culture": "en",
	"dictionary": {"years": {"years": [[null, -1, "years ago"], [0, 0, "today"], [1, null, "years"]]}}
}`

// countingSource records how often each stream was opened and closed.
type countingSource struct {
	name   string
	data   []byte
	plural *countingSource
	opened atomic.Int32
	closed atomic.Int32
}

type countingReader struct {
	io.Reader
	src *countingSource
}

func (r *countingReader) Close() error {
	r.src.closed.Add(1)
	return nil
}

func (s *countingSource) Name() string { return s.name }

func (s *countingSource) Open() (io.ReadCloser, error) {
	s.opened.Add(1)
	return &countingReader{Reader: bytes.NewReader(s.data), src: s}, nil
}

func (s *countingSource) Companion(string) (dictionary.Source, bool) {
	if s.plural == nil {
		return nil, false
	}
	return s.plural, true
}

type failingSource struct{ name string }

func (s failingSource) Name() string { return s.name }

func (s failingSource) Open() (io.ReadCloser, error) { return nil, errors.New("disk on fire") }

func (s failingSource) Companion(string) (dictionary.Source, bool) { return nil, false }

func loadedNode(t *testing.T, culture, scope, doc string) *dictionary.Node {
	t.Helper()
	n, err := dictionary.NewNode(culture, scope).Load(dictionary.NewBytesSource(culture+".json", []byte(doc)))
	require.NoError(t, err)
	return n
}

func TestNode_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads document and companion", func(t *testing.T) {
		t.Parallel()
		src := dictionary.NewBytesSource("en.json", []byte(enDocument)).WithPlural([]byte(enPlural))

		n, err := dictionary.NewNode("en", "").Load(src)
		require.NoError(t, err)
		assert.True(t, n.Loaded())
		assert.Equal(t, "en.json", n.Source())
		assert.Equal(t, "en", n.Culture())
		assert.Equal(t, dictionary.GlobalScope, n.Scope())

		assert.Equal(t, dictionary.LocalizedString{Name: "greeting", Value: "Hello"}, n.Translations()["greeting"])
		assert.Equal(t, dictionary.LocalizedString{Name: "currency", Value: "GBP"}, n.Constants()["currency"])

		years, ok := n.Pluralized()["years"]
		require.True(t, ok)
		assert.Equal(t, "years", years.Default.Value)
		assert.Len(t, years.Variants, 3)
		assert.Equal(t, "today", years.Select(0).Value)
	})

	t.Run("without companion pluralized table is empty", func(t *testing.T) {
		t.Parallel()
		n := loadedNode(t, "en", "", enDocument)
		assert.Empty(t, n.Pluralized())
	})

	t.Run("load is idempotent", func(t *testing.T) {
		t.Parallel()
		n := loadedNode(t, "en", "", enDocument)

		other := dictionary.NewBytesSource("other.json", []byte(`{"culture": "en", "dictionary": {"greeting": "Hi"}}`))
		again, err := n.Load(other)
		require.NoError(t, err)
		assert.Same(t, n, again)
		assert.Equal(t, "en.json", n.Source())
		assert.Equal(t, "Hello", n.Translations()["greeting"].Value)
	})

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()
		_, err := dictionary.NewNode("en", "").Load(nil)
		assert.ErrorIs(t, err, dictionary.ErrNilSource)
	})

	t.Run("open failure", func(t *testing.T) {
		t.Parallel()
		n := dictionary.NewNode("en", "")
		_, err := n.Load(failingSource{name: "en.json"})
		assert.ErrorContains(t, err, "disk on fire")
		assert.False(t, n.Loaded())
	})

	t.Run("declared identity must match", func(t *testing.T) {
		t.Parallel()
		n := dictionary.NewNode("en", "checkout")
		_, err := n.Load(dictionary.NewBytesSource("en.json", []byte(enDocument)))
		assert.ErrorIs(t, err, dictionary.ErrDictionaryLoad)
		assert.False(t, n.Loaded())
	})

	t.Run("companion culture mismatch", func(t *testing.T) {
		t.Parallel()
		src := dictionary.NewBytesSource("en.json", []byte(enDocument)).
			WithPlural([]byte(`{"culture": "de", "dictionary": {}}`))

		n := dictionary.NewNode("en", "")
		_, err := n.Load(src)
		require.Error(t, err)

		var loadErr *dictionary.DictionaryLoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Equal(t, "en.plural.json", loadErr.Source)
		assert.False(t, n.Loaded())
	})

	t.Run("malformed bound fails the whole load", func(t *testing.T) {
		t.Parallel()
		src := dictionary.NewBytesSource("en.json", []byte(enDocument)).
			WithPlural([]byte(`{"culture": "en", "dictionary": {"k": {"d": [["abc", 1, "x"]]}}}`))

		n := dictionary.NewNode("en", "")
		_, err := n.Load(src)
		assert.ErrorIs(t, err, dictionary.ErrDictionaryFormat)
		assert.False(t, n.Loaded())
		assert.Empty(t, n.Translations())
	})

	t.Run("streams are closed on every path", func(t *testing.T) {
		t.Parallel()

		ok := &countingSource{name: "en.json", data: []byte(enDocument)}
		ok.plural = &countingSource{name: "en.plural.json", data: []byte(enPlural)}
		_, err := dictionary.NewNode("en", "").Load(ok)
		require.NoError(t, err)
		assert.Equal(t, ok.opened.Load(), ok.closed.Load())
		assert.Equal(t, ok.plural.opened.Load(), ok.plural.closed.Load())
		assert.EqualValues(t, 1, ok.plural.closed.Load())

		broken := &countingSource{name: "en.json", data: []byte(`{"culture": `)}
		_, err = dictionary.NewNode("en", "").Load(broken)
		require.ErrorIs(t, err, dictionary.ErrMalformedDocument)
		assert.EqualValues(t, 1, broken.closed.Load())
	})
}

func TestNode_NotLoaded(t *testing.T) {
	t.Parallel()

	n := dictionary.NewNode("en", "")
	assert.False(t, n.Loaded())
	assert.Empty(t, n.Source())
	assert.Empty(t, n.Translations())
	assert.Empty(t, n.Pluralized())
	assert.Empty(t, n.Constants())
	assert.Zero(t, n.BuildCount(), "nothing is cached before load")

	_, err := n.Load(dictionary.NewBytesSource("en.json", []byte(enDocument)))
	require.NoError(t, err)
	assert.Equal(t, "Hello", n.Translations()["greeting"].Value)
}

func TestNode_ConcurrentSingleBuild(t *testing.T) {
	t.Parallel()

	src := dictionary.NewBytesSource("en.json", []byte(enDocument)).WithPlural([]byte(enPlural))
	n, err := dictionary.NewNode("en", "").Load(src)
	require.NoError(t, err)

	const goroutines = 64
	var wg sync.WaitGroup
	start := make(chan struct{})
	results := make([]map[string]dictionary.LocalizedString, goroutines)

	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results[i] = n.Translations()
			_ = n.Pluralized()
			_ = n.Constants()
		}()
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 3, n.BuildCount(), "each table is built exactly once")
	for _, r := range results {
		assert.Equal(t, "Hello", r["greeting"].Value)
	}
}

func TestNode_SetParent(t *testing.T) {
	t.Parallel()

	t.Run("nil parent", func(t *testing.T) {
		t.Parallel()
		n := dictionary.NewNode("en-US", "")
		assert.False(t, n.SetParent(nil))
		assert.Nil(t, n.Parent())
	})

	t.Run("self", func(t *testing.T) {
		t.Parallel()
		n := dictionary.NewNode("en", "")
		assert.False(t, n.SetParent(n))
		assert.Nil(t, n.Parent())
	})

	t.Run("links parent and claims child slot", func(t *testing.T) {
		t.Parallel()
		child := dictionary.NewNode("en-US", "")
		parent := dictionary.NewNode("en", "")

		assert.True(t, child.SetParent(parent))
		assert.Same(t, parent, child.Parent())

		culture, scope, ok := parent.Child()
		require.True(t, ok)
		assert.Equal(t, "en-US", culture)
		assert.Equal(t, dictionary.GlobalScope, scope)

		// relinking the same pair is fine
		assert.True(t, child.SetParent(parent))
	})

	t.Run("cycle is rejected", func(t *testing.T) {
		t.Parallel()
		a := dictionary.NewNode("de-AT", "")
		b := dictionary.NewNode("de", "")
		c := dictionary.NewNode("en", "")

		require.True(t, a.SetParent(b))
		require.True(t, b.SetParent(c))

		assert.False(t, c.SetParent(a))
		assert.Nil(t, c.Parent())

		twin := dictionary.NewNode("de", "")
		assert.False(t, twin.SetParent(a), "a node equal to the child already in the chain")
		assert.Nil(t, twin.Parent())
	})

	t.Run("second child keeps parent link", func(t *testing.T) {
		t.Parallel()
		parent := dictionary.NewNode("en", "")
		first := dictionary.NewNode("en-US", "")
		second := dictionary.NewNode("en-GB", "")

		assert.True(t, first.SetParent(parent))
		assert.False(t, second.SetParent(parent))
		assert.Same(t, parent, second.Parent())

		culture, _, ok := parent.Child()
		require.True(t, ok)
		assert.Equal(t, "en-US", culture)
	})
}

func TestNode_Equal(t *testing.T) {
	t.Parallel()

	assert.True(t, dictionary.NewNode("en-us", "").Equal(dictionary.NewNode("en-US", dictionary.GlobalScope)))
	assert.False(t, dictionary.NewNode("en", "").Equal(dictionary.NewNode("en", "checkout")))
	assert.False(t, dictionary.NewNode("en", "").Equal(dictionary.NewNode("de", "")))
	assert.False(t, dictionary.NewNode("en", "").Equal(nil))
}
