package goquery_test

import (
	"testing"

	"github.com/fwojciec/hearings"
	"github.com/fwojciec/hearings/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements hearings.Converter at compile time.
var _ hearings.Converter = (*goquery.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("keeps transcript pre blocks verbatim", func(t *testing.T) {
		t.Parallel()

		html := `<html>
<head><title>- HEARING ON ENERGY</title><style>pre { font: mono }</style></head>
<body>
<a href="/fdsys/search/home.action">Home</a>
<pre>
                     HEARING ON ENERGY

    Mr. Dingell. The committee will come to order.
    Mr. Barton. Thank you, Mr. Chairman.
</pre>
</body>
</html>`

		text, err := goquery.NewConverter().Convert([]byte(html))

		require.NoError(t, err)
		assert.Equal(t, "HEARING ON ENERGY\n\n    Mr. Dingell. The committee will come to order.\n    Mr. Barton. Thank you, Mr. Chairman.", text)
		assert.NotContains(t, text, "Home")
		assert.NotContains(t, text, "font")
	})

	t.Run("joins multiple pre blocks", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><pre>PART ONE</pre><p>page break</p><pre>PART TWO</pre></body></html>`

		text, err := goquery.NewConverter().Convert([]byte(html))

		require.NoError(t, err)
		assert.Equal(t, "PART ONE\n\nPART TWO", text)
	})

	t.Run("decodes entities", func(t *testing.T) {
		t.Parallel()

		html := `<pre>Smith &amp; Wesson &lt;testimony&gt;</pre>`

		text, err := goquery.NewConverter().Convert([]byte(html))

		require.NoError(t, err)
		assert.Equal(t, "Smith & Wesson <testimony>", text)
	})

	t.Run("falls back to body text without pre blocks", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><script>var x = 1;</script><h1>Title</h1><p>First paragraph.</p></body></html>`

		text, err := goquery.NewConverter().Convert([]byte(html))

		require.NoError(t, err)
		assert.Contains(t, text, "Title")
		assert.Contains(t, text, "First paragraph.")
		assert.NotContains(t, text, "var x")
	})

	t.Run("collapses blank line runs and trailing space", func(t *testing.T) {
		t.Parallel()

		html := "<pre>line one   \r\n\r\n\r\n\r\nline two\t\n</pre>"

		text, err := goquery.NewConverter().Convert([]byte(html))

		require.NoError(t, err)
		assert.Equal(t, "line one\n\nline two", text)
	})

	t.Run("returns empty string for empty input", func(t *testing.T) {
		t.Parallel()

		text, err := goquery.NewConverter().Convert([]byte("  \n "))

		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("returns empty string for a page without text", func(t *testing.T) {
		t.Parallel()

		text, err := goquery.NewConverter().Convert([]byte("<html><body></body></html>"))

		require.NoError(t, err)
		assert.Empty(t, text)
	})
}
