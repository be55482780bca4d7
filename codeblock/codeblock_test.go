package codeblock_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/traylinx/bridge-sdk-go/codeblock"
)

func TestExtractAll_SingleBlock(t *testing.T) {
	text := "Here is the script:\n" +
		"```python\n" +
		"print('hello')\n" +
		"```\n" +
		"Run it with python3."

	blocks := codeblock.ExtractAll(text)
	require.Len(t, blocks, 1)
	require.Equal(t, "python", blocks[0].Lang)
	require.Equal(t, "print('hello')\n", blocks[0].Text)
}

func TestExtractAll_MultipleBlocksInOrder(t *testing.T) {
	text := "```go\npackage main\n```\n" +
		"prose between\n" +
		"```bash\nls -la\n```\n"

	blocks := codeblock.ExtractAll(text)
	require.Len(t, blocks, 2)
	require.Equal(t, "go", blocks[0].Lang)
	require.Equal(t, "package main\n", blocks[0].Text)
	require.Equal(t, "bash", blocks[1].Lang)
	require.Equal(t, "ls -la\n", blocks[1].Text)
}

func TestExtractAll_TildeFence(t *testing.T) {
	text := "~~~python\nx = 1\n~~~\n"

	blocks := codeblock.ExtractAll(text)
	require.Len(t, blocks, 1)
	require.Equal(t, "python", blocks[0].Lang)
	require.Equal(t, "x = 1\n", blocks[0].Text)
}

func TestExtractAll_MixedFenceCharsDoNotClose(t *testing.T) {
	// A tilde line inside a backtick block is body, not a closer.
	text := "```\na\n~~~\nb\n```\n"

	blocks := codeblock.ExtractAll(text)
	require.Len(t, blocks, 1)
	require.Equal(t, "a\n~~~\nb\n", blocks[0].Text)
}

func TestExtractAll_UnterminatedFence(t *testing.T) {
	text := "```python\nprint('no closer')\n"

	blocks := codeblock.ExtractAll(text)
	require.Len(t, blocks, 1)
	require.Equal(t, "print('no closer')\n", blocks[0].Text)
}

func TestExtractAll_IndentedFence(t *testing.T) {
	text := "  ```json\n  {\"a\": 1}\n  ```\n"

	blocks := codeblock.ExtractAll(text)
	require.Len(t, blocks, 1)
	require.Equal(t, "json", blocks[0].Lang)
	require.Equal(t, "  {\"a\": 1}\n", blocks[0].Text)
}

func TestExtractAll_BareFenceHasEmptyLang(t *testing.T) {
	text := "```\nplain\n```\n"

	blocks := codeblock.ExtractAll(text)
	require.Len(t, blocks, 1)
	require.Empty(t, blocks[0].Lang)
}

func TestExtractAll_EmptyBlock(t *testing.T) {
	text := "```python\n```\n"

	blocks := codeblock.ExtractAll(text)
	require.Len(t, blocks, 1)
	require.Empty(t, blocks[0].Text)
}

func TestExtractAll_NoBlocks(t *testing.T) {
	require.Empty(t, codeblock.ExtractAll("just prose, no fences"))
	require.Empty(t, codeblock.ExtractAll(""))
}

func TestExtract_LanguageVersionSuffix(t *testing.T) {
	text := "```python3\nimport sys\n```\n"

	body, ok := codeblock.Extract(text, "python")
	require.True(t, ok)
	require.Equal(t, "import sys\n", body)
}

func TestExtract_CaseInsensitive(t *testing.T) {
	text := "```Python\nx = 2\n```\n"

	body, ok := codeblock.Extract(text, "PYTHON")
	require.True(t, ok)
	require.Equal(t, "x = 2\n", body)
}

func TestExtract_SkipsOtherLanguages(t *testing.T) {
	text := "```bash\necho hi\n```\n" +
		"```python\nprint('hi')\n```\n"

	body, ok := codeblock.Extract(text, "python")
	require.True(t, ok)
	require.Equal(t, "print('hi')\n", body)
}

func TestExtract_NoMatch(t *testing.T) {
	text := "```bash\necho hi\n```\n"

	_, ok := codeblock.Extract(text, "python")
	require.False(t, ok)

	_, ok = codeblock.Extract("no fences here", "python")
	require.False(t, ok)
}

func TestExtract_EmptyLangMatchesFirstBlock(t *testing.T) {
	text := "```bash\necho hi\n```\n```python\nx\n```\n"

	body, ok := codeblock.Extract(text, "")
	require.True(t, ok)
	require.Equal(t, "echo hi\n", body)
}

func TestExtract_PrefixIsNotAMatch(t *testing.T) {
	// "javascript" must not satisfy a request for "java".
	text := "```javascript\nlet x = 1\n```\n"

	_, ok := codeblock.Extract(text, "java")
	require.False(t, ok)
}
