// Package compiler provides the compilation pipeline for patch scripts.
// It transforms a behavior script into DeHackEd patch text through four
// phases:
// 1. Preprocessor: include splicing and charset conversion
// 2. Lexer/Parser: AST generation
// 3. Binder: semantic checks against the action registry, context mutation
// 4. Exporter: canonical-order diff serialization
//
// The pipeline stops at the first error of any phase.
package compiler

import (
	"errors"
	"path/filepath"

	"github.com/zurustar/decopatch/pkg/compiler/binder"
	"github.com/zurustar/decopatch/pkg/compiler/exporter"
	"github.com/zurustar/decopatch/pkg/compiler/lexer"
	"github.com/zurustar/decopatch/pkg/compiler/parser"
	"github.com/zurustar/decopatch/pkg/compiler/preprocessor"
	"github.com/zurustar/decopatch/pkg/patch"
)

// Options configures one compilation.
type Options struct {
	// Edition selects the baseline dataset (doom19, udoom19).
	Edition string

	// Tier is the compatibility tier scripts are checked against.
	Tier patch.Tier

	// SourceCharset is the IANA name of the source encoding. Empty means
	// UTF-8.
	SourceCharset string
}

// Result is a successful compilation: the bound context and the rendered
// patch text.
type Result struct {
	Context *patch.Context
	Patch   string
}

// Compile compiles UTF-8 source text. Includes must already be spliced;
// use CompileFile for on-disk scripts.
func Compile(source string, opts Options) (*Result, error) {
	ctx, err := patch.NewContext(opts.Edition, opts.Tier)
	if err != nil {
		return nil, err
	}

	// Phase 1: lexical and syntax analysis
	l := lexer.New(source)
	p := parser.New(l)
	script := p.ParseScript()
	if errs := p.Errors(); len(errs) > 0 {
		pe := errs[0]
		return nil, NewParserErrorWithContext(pe.Message, pe.Line, pe.Column, source, pe)
	}

	// Phase 2: semantic binding
	b := binder.New(ctx)
	if err := b.Bind(script); err != nil {
		var be *binder.BindError
		if errors.As(err, &be) {
			return nil, NewBinderErrorWithContext(
				be.Kind.String()+": "+be.Message, be.Line, be.Column, source, be)
		}
		return nil, err
	}

	// Phase 3: export
	text := exporter.New(ctx).Export()
	return &Result{Context: ctx, Patch: text}, nil
}

// CompileFile preprocesses and compiles a script file. Includes resolve
// relative to the file's directory.
func CompileFile(path string, opts Options) (*Result, error) {
	dir := filepath.Dir(path)
	loader := preprocessor.NewFilesystemLoader(dir)
	pp := preprocessor.NewPreprocessor(dir, opts.SourceCharset, loader)

	source, err := pp.Process(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return Compile(source, opts)
}
