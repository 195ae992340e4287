package parser

import (
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Pool recycles tree-sitter parser instances for a single grammar so
// concurrent per-file extraction doesn't pay the allocation cost of
// sitter.NewParser on every file.
//
// Safe for use by multiple goroutines.
type Pool struct {
	language *sitter.Language
	inner    sync.Pool
}

func NewPool(language *sitter.Language) *Pool {
	p := &Pool{language: language}
	p.inner = sync.Pool{
		New: func() any {
			sp := sitter.NewParser()
			if err := sp.SetLanguage(language); err != nil {
				panic(err)
			}
			return sp
		},
	}
	return p
}

// Get returns a parser already configured for the pool's language.
func (p *Pool) Get() *sitter.Parser {
	sp := p.inner.Get().(*sitter.Parser)
	return sp
}

// Put resets the parser and returns it for reuse. The caller must not
// use sp afterwards.
func (p *Pool) Put(sp *sitter.Parser) {
	if sp == nil {
		return
	}
	sp.Reset()
	p.inner.Put(sp)
}
