package input_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasi76/namesift/internal/input"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadLines(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "urls.txt", `
# seed list
https://example.com
https://kranushealth.com/

not-a-url
https://example.com
`)

	records, err := input.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://example.com",
		"https://kranushealth.com/",
	}, input.URLs(records), "comments, blanks, junk, and duplicates are dropped")
}

func TestLoadCSVWithHeader(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "urls.csv", "company_name,website\nKranus Health,https://kranushealth.com\nfyzo,https://fyzo.de\n")

	records, err := input.Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "https://kranushealth.com", records[0].URL)
	assert.Equal(t, "Kranus Health", records[0].Name)
}

func TestLoadCSVHeaderless(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "urls.csv", "https://example.com\nhttps://fyzo.de\n")

	records, err := input.Load(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadJSONStrings(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "urls.json", `["https://example.com", "https://fyzo.de"]`)

	records, err := input.Load(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadJSONObjects(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "urls.json",
		`[{"url": "https://example.com", "name": "Example GmbH"}, {"website": "https://fyzo.de"}]`)

	records, err := input.Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Example GmbH", records[0].Name)
	assert.Equal(t, "https://fyzo.de", records[1].URL)
}

func TestLoadDedupesTrailingSlash(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "urls.txt", "https://example.com\nhttps://example.com/\n")

	records, err := input.Load(path)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoadEmpty(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "urls.txt", "# nothing here\n")

	_, err := input.Load(path)
	assert.ErrorIs(t, err, input.ErrNoURLs)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := input.Load(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
