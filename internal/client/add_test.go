package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shishikan-sg/shishikan/pkg/libssk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"spicy", "halal"}, split(" spicy, ,halal,"))
	assert.Nil(t, split(" "))
}

func TestMatchCategories(t *testing.T) {
	categories := []libssk.Category{
		{ID: "c1", Name: "Noodles"},
		{ID: "c2", Name: "Rice"},
	}

	ids, err := matchCategories(categories, "rice, NOODLES")
	assert.NoError(t, err)
	assert.Equal(t, []string{"c2", "c1"}, ids)

	_, err = matchCategories(categories, "rice, bread")
	assert.EqualError(t, err, "unknown category: bread")

	_, err = matchCategories(categories, "")
	assert.EqualError(t, err, "at least one category is required")
}

func TestParsePrice(t *testing.T) {
	for input, expected := range map[string]libssk.PriceTier{
		"1":    libssk.PriceCheap,
		"$$":   libssk.PriceModerate,
		"3":    libssk.PriceExpensive,
		"$$$$": libssk.PriceLuxury,
	} {
		tier, err := parsePrice(input)
		assert.NoError(t, err)
		assert.Equal(t, expected, tier)
	}

	_, err := parsePrice("$$$$$")
	assert.EqualError(t, err, `unknown price: "$$$$$"`)
}

func TestParseVerdict(t *testing.T) {
	verdict, err := parseVerdict("Must-Try")
	assert.NoError(t, err)
	assert.Equal(t, libssk.VerdictMustTry, verdict)

	_, err = parseVerdict("meh")
	assert.EqualError(t, err, `unknown verdict: "meh"`)
}

func TestUpload(t *testing.T) {
	var uploaded []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images", r.URL.Path)

		f, fh, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()

		data, err := io.ReadAll(f)
		require.NoError(t, err)
		uploaded = append(uploaded, fh.Filename+":"+string(data))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"url":"https://cdn.example.com/`+fh.Filename+`"}`)
	}))
	defer ts.Close()

	client, err := libssk.NewClient(ts.Client(), ts.URL)
	require.NoError(t, err)

	filename := filepath.Join(t.TempDir(), "laksa.jpg")
	require.NoError(t, os.WriteFile(filename, []byte("jpeg"), 0600))

	urls, err := upload(context.Background(), client, []string{"https://other.example.com/cover.jpg", filename})
	assert.NoError(t, err)
	assert.Equal(t, []string{"https://other.example.com/cover.jpg", "https://cdn.example.com/laksa.jpg"}, urls)
	assert.Equal(t, []string{"laksa.jpg:jpeg"}, uploaded)

	_, err = upload(context.Background(), client, []string{filepath.Join(t.TempDir(), "missing.jpg")})
	assert.ErrorContains(t, err, "could not open image")
}
