package infra_csvtable

import (
	"bytes"
	"strings"
	"testing"

	"github.com/humanbelnik/kinopick/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCanonical(t *testing.T) {
	in := "Title,Genres,Viewed\n" +
		"The Thing,Horror; Sci-Fi,No\n" +
		"Ghostbusters,Comedy,Yes\n"

	c, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, model.Catalog{
		{Title: "The Thing", Genres: []string{"Horror", "Sci-Fi"}, Viewed: false},
		{Title: "Ghostbusters", Genres: []string{"Comedy"}, Viewed: true},
	}, c)
}

func TestDecodeLegacyLayout(t *testing.T) {
	in := "Film Title,Year,Genre,Viewed\n" +
		"Alien,1979,\"Horror, Sci-Fi\",yes\n" +
		"Heat,1995,,no\n" +
		",2000,Drama,No\n"

	c, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, model.Catalog{
		{Title: "Alien", Genres: []string{"Horror", "Sci-Fi"}, Viewed: true},
		{Title: "Heat", Viewed: false},
	}, c)
}

func TestDecodeSemicolonTable(t *testing.T) {
	in := "Title;Genres;Viewed\nAlien;Horror, Sci-Fi;Yes\n"

	c, err := Decode(strings.NewReader(in), WithComma(';'))
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, []string{"Horror", "Sci-Fi"}, c[0].Genres)
}

func TestDecodeMissingColumns(t *testing.T) {
	testCases := []struct {
		name          string
		in            string
		errorContains string
	}{
		{
			name:          "missing viewed",
			in:            "Title,Genres\nAlien,Horror\n",
			errorContains: "Viewed",
		},
		{
			name:          "missing title and genres",
			in:            "Name,Viewed\nAlien,Yes\n",
			errorContains: "Title, Genres",
		},
		{
			name:          "empty input",
			in:            "",
			errorContains: "empty table",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.in))
			assert.ErrorIs(t, err, ErrSchema)
			assert.ErrorContains(t, err, tc.errorContains)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := "Title,Genres,Viewed\n" +
		"The Thing,Horror; Sci-Fi,No\n" +
		"\"Crouching Tiger, Hidden Dragon\",Action,Yes\n" +
		"Koyaanisqatsi,,No\n"

	c, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Encode(&out, c))
	assert.Equal(t, in, out.String())

	again, err := Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestEncodeEmptyCatalogWritesHeader(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Encode(&out, model.Catalog{}))
	assert.Equal(t, "Title,Genres,Viewed\n", out.String())
}

func TestSplitGenres(t *testing.T) {
	assert.Equal(t, []string{"Comedy", "Horror"}, SplitGenres("Comedy; Horror"))
	assert.Equal(t, []string{"Comedy", "Horror"}, SplitGenres("Comedy,Horror"))
	assert.Nil(t, SplitGenres("  "))
}

func TestParseViewed(t *testing.T) {
	assert.True(t, ParseViewed("Yes"))
	assert.True(t, ParseViewed(" yes "))
	assert.False(t, ParseViewed("No"))
	assert.False(t, ParseViewed("Y"))
	assert.False(t, ParseViewed(""))
}
