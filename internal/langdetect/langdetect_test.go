package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/semfora/internal/types"
)

func TestDetectByExtension(t *testing.T) {
	cases := map[string]types.Language{
		"main.go":        types.LangGo,
		"app.tsx":        types.LangTypeScript,
		"index.js":       types.LangJavaScript,
		"script.py":      types.LangPython,
		"lib.rs":         types.LangRust,
		"Service.cs":     types.LangCSharp,
		"engine.cpp":     types.LangCPP,
		"Main.java":      types.LangJava,
		"index.php":      types.LangPHP,
		"build.zig":      types.LangZig,
		"deploy.unknown": types.LangUnsupported,
	}
	for path, want := range cases {
		assert.Equal(t, want, Detect(path, nil), path)
	}
}

func TestDetectShebangForExtensionlessFile(t *testing.T) {
	assert.Equal(t, types.LangShell, Detect("myscript", []byte("#!/bin/bash\necho hi\n")))
	assert.Equal(t, types.LangPython, Detect("myscript", []byte("#!/usr/bin/env python3\nprint(1)\n")))
	assert.Equal(t, types.LangUnsupported, Detect("myscript", []byte("no shebang here")))
}

func TestDetectVueScriptLang(t *testing.T) {
	assert.Equal(t, types.LangTypeScript, Detect("App.vue", []byte(`<script lang="ts">export default {}</script>`)))
	assert.Equal(t, types.LangJavaScript, Detect("App.vue", []byte(`<script lang="js">export default {}</script>`)))
	assert.Equal(t, types.LangTypeScript, Detect("App.vue", []byte(`<script>export default {}</script>`)))
}
