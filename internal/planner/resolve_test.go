package planner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTag(t *testing.T) {
	tags := []string{
		"autoconf-2.59",
		"autoconf-2.69",
		"v2.13",
		"release-2.61",
		"random-branch-tag",
	}

	tests := []struct {
		name    string
		pkg     string
		version string
		want    string
	}{
		{"package-version form", "autoconf", "2.69", "autoconf-2.69"},
		{"v form", "autoconf", "2.13", "v2.13"},
		{"release form", "autoconf", "2.61", "release-2.61"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTag(tags, tt.pkg, tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTagCaseInsensitive(t *testing.T) {
	got, err := ResolveTag([]string{"AUTOMAKE-1.15"}, "automake", "1.15")
	require.NoError(t, err)
	assert.Equal(t, "AUTOMAKE-1.15", got, "resolution keeps the tag as the repository spells it")
}

func TestResolveTagAnchoredToWholeTag(t *testing.T) {
	// Neither prefixes nor suffixes of a candidate count as a match.
	_, err := ResolveTag([]string{"v2.690", "xautoconf-2.69", "autoconf-2.69-rc1"}, "autoconf", "2.69")
	require.Error(t, err)

	var tagErr *TagNotFoundError
	require.ErrorAs(t, err, &tagErr)
	assert.Empty(t, tagErr.Matches)
}

func TestResolveTagNoMatch(t *testing.T) {
	_, err := ResolveTag([]string{"v1.0", "release-2.0"}, "libtool", "2.4.6")
	require.Error(t, err)

	var tagErr *TagNotFoundError
	require.ErrorAs(t, err, &tagErr)
	assert.Equal(t, "libtool", tagErr.Package)
	assert.Equal(t, "2.4.6", tagErr.Version)
	assert.Contains(t, tagErr.Error(), "no tag matches")
}

func TestResolveTagAmbiguous(t *testing.T) {
	_, err := ResolveTag([]string{"v1.2", "release-1.2"}, "automake", "1.2")
	require.Error(t, err)

	var tagErr *TagNotFoundError
	require.ErrorAs(t, err, &tagErr)
	assert.Len(t, tagErr.Matches, 2)
	assert.Contains(t, tagErr.Error(), "ambiguous")
}

func TestResolveTagDeterministic(t *testing.T) {
	tags := []string{"libtool-2.4.6", "v1.5.26", "release-1.5.22"}
	first, err := ResolveTag(tags, "libtool", "2.4.6")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ResolveTag(tags, "libtool", "2.4.6")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTagNotFoundErrorIsError(t *testing.T) {
	_, err := ResolveTag(nil, "autoconf", "2.69")
	assert.True(t, errors.As(err, new(*TagNotFoundError)))
}
