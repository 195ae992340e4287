package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"diffscope/internal/types"
)

const saveSource = `import os
import sys


def save(path, data):
    handle = os.open(path)
    handle.write(data)
    handle.write(data)
`

func TestCalls(t *testing.T) {
	tree := parseSource(t, "save.py", saveSource)
	save := Locate(tree, []types.LineInterval{{Start: 6, End: 6}})
	assert.Len(t, save, 1)

	// First-occurrence order, repeated targets deduplicated.
	assert.Equal(t, []string{"os.open", "handle.write"}, Calls(tree, save[0]))
}

func TestRelevantImportsKeepsReferencedOnly(t *testing.T) {
	tree := parseSource(t, "save.py", saveSource)
	save := Locate(tree, []types.LineInterval{{Start: 6, End: 6}})

	spans := RelevantImports(tree, save)
	assert.Equal(t, []types.LineInterval{{Start: 1, End: 1}}, spans)
	assert.Equal(t, "import os", tree.Slice(spans[0]))
}

func TestRelevantImportsCallPrefix(t *testing.T) {
	src := `import json
import logging


def dump(value):
    return json.dumps(value)
`
	tree := parseSource(t, "dump.py", src)
	defs := Locate(tree, []types.LineInterval{{Start: 6, End: 6}})

	spans := RelevantImports(tree, defs)
	assert.Equal(t, []types.LineInterval{{Start: 1, End: 1}}, spans)
}

func TestRelevantImportsBoundNameNotFree(t *testing.T) {
	// The parameter shadows nothing here, but the locally assigned name
	// matching an import binding must not make that import relevant.
	src := `import os
import csv


def rename(csv):
    target = csv + ".bak"
    return os.rename(csv, target)
`
	tree := parseSource(t, "rename.py", src)
	defs := Locate(tree, []types.LineInterval{{Start: 6, End: 6}})

	spans := RelevantImports(tree, defs)
	assert.Equal(t, []types.LineInterval{{Start: 1, End: 1}}, spans)
}

func TestRelevantImportsMultipleDefinitions(t *testing.T) {
	src := `import os
import sys


def a():
    return os.getpid()


def b():
    return sys.argv
`
	tree := parseSource(t, "multi.py", src)
	defs := Locate(tree, []types.LineInterval{
		{Start: 6, End: 6},
		{Start: 10, End: 10},
	})

	spans := RelevantImports(tree, defs)
	assert.Equal(t, []types.LineInterval{
		{Start: 1, End: 1},
		{Start: 2, End: 2},
	}, spans)
}
