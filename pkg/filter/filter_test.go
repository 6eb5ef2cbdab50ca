package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAndMatch(t *testing.T) {
	f, err := Compile(`method == "POST" && status >= 400`)
	require.NoError(t, err)

	assert.True(t, f.Match(Env{Method: "POST", Status: 500}))
	assert.False(t, f.Match(Env{Method: "POST", Status: 200}))
	assert.False(t, f.Match(Env{Method: "GET", Status: 500}))
}

func TestCompile_PathPrefix(t *testing.T) {
	f, err := Compile(`path startsWith "/api/"`)
	require.NoError(t, err)

	assert.True(t, f.Match(Env{Path: "/api/users"}))
	assert.False(t, f.Match(Env{Path: "/healthz"}))
}

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile(`method ==`)
	require.Error(t, err)
}

func TestCompile_NonBoolean(t *testing.T) {
	_, err := Compile(`path`)
	require.Error(t, err)
}

func TestNilFilterMatchesEverything(t *testing.T) {
	var f *Filter
	assert.True(t, f.Match(Env{Method: "GET"}))
	assert.Empty(t, f.Source())
}
