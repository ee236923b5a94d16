package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierCamelCase(t *testing.T) {
	assert.Equal(t, []string{"app", "layout"}, Identifier("AppLayout"))
	assert.Equal(t, []string{"handle", "click"}, Identifier("handleClick"))
}

func TestIdentifierSnakeAndKebab(t *testing.T) {
	assert.Equal(t, []string{"use", "state"}, Identifier("use_state"))
	assert.Equal(t, []string{"my", "component"}, Identifier("my-component"))
}

func TestIdentifierAcronym(t *testing.T) {
	assert.Equal(t, []string{"http", "client"}, Identifier("HTTPClient"))
}

func TestPathSegments(t *testing.T) {
	assert.Equal(t, []string{"src", "applayout.tsx"}, PathSegments("src/AppLayout.tsx"))
}
