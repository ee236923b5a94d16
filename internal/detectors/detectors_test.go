package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyImportSource(t *testing.T) {
	assert.Equal(t, "relative", string(classifyImportSource("./util")))
	assert.Equal(t, "relative", string(classifyImportSource("../lib/util")))
	assert.Equal(t, "external", string(classifyImportSource("react")))
	assert.Equal(t, "local", string(classifyImportSource("/abs/path")))
}

func TestFirstIdentifierBefore(t *testing.T) {
	assert.Equal(t, "useState", firstIdentifierBefore("useState(false)"))
	assert.Equal(t, "db.Save", firstIdentifierBefore("db.Save(user)"))
	assert.Equal(t, "", firstIdentifierBefore("false"))
	assert.Equal(t, "", firstIdentifierBefore(""))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "links", pluralize("Link"))
	assert.Equal(t, "routes", pluralize("Routes"))
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "fmt", lastSegment("fmt"))
	assert.Equal(t, "net", lastSegment("net/net"))
	assert.Equal(t, "util", lastSegment("github.com/foo/util"))
}

func TestMatchesPrefixOrExact(t *testing.T) {
	assert.True(t, matchesPrefixOrExact("fetch", networkCallPatterns))
	assert.True(t, matchesPrefixOrExact("http.Get", networkCallPatterns))
	assert.True(t, matchesPrefixOrExact("db.Save", persistenceCallPatterns))
	assert.True(t, matchesPrefixOrExact("write", persistenceCallPatterns))
	assert.False(t, matchesPrefixOrExact("compute", networkCallPatterns))
}
