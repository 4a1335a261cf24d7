package php

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	phpsitter "github.com/smacker/go-tree-sitter/php"
	"github.com/viant/afs"
	"github.com/viant/phplint/token"
)

// Inspector tokenizes PHP source code with tree-sitter
type Inspector struct {
	fs afs.Service
}

// NewInspector creates a new PHP Inspector, nil fs defaults to afs.New()
func NewInspector(fs afs.Service) *Inspector {
	if fs == nil {
		fs = afs.New()
	}
	return &Inspector{fs: fs}
}

// InspectSource parses PHP source code and returns its token stream
func (i *Inspector) InspectSource(src []byte, filename string) (*token.Stream, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(phpsitter.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s: empty syntax tree", filename)
	}

	tokenizer := newTokenizer(src)
	tokenizer.walk(tree.RootNode())
	tokenizer.flush()
	return token.NewStream(filename, tokenizer.tokens, tokenizer.members), nil
}

// InspectFile downloads and tokenizes PHP file
func (i *Inspector) InspectFile(ctx context.Context, URL string) (*token.Stream, []byte, error) {
	src, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	stream, err := i.InspectSource(src, URL)
	if err != nil {
		return nil, nil, err
	}
	return stream, src, nil
}
