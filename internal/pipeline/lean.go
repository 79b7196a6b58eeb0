package pipeline

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Lean 4 vocabulary, grouped the way the token classes are styled.
var (
	leanKeywords = []string{
		"by", "calc", "match", "with", "if", "then", "else", "do", "fun",
		"forall", "exists", "let", "in", "begin", "end", "open", "namespace",
		"section", "inductive", "structure", "class", "instance", "theorem",
		"lemma", "def", "example", "corollary", "axioms", "axiom", "variable",
		"variables", "intro", "intros", "apply", "refine", "exact", "assume",
		"have", "show", "from", "using", "rewrite", "rw", "simp", "dsimp", "erw",
		"try", "cases", "generalize", "specialize", "where", "deriving",
		"mutual", "mutual_def", "mutual_inductive", "field",
	}
	leanLiterals = []string{"true", "false", "tt", "ff"}
	leanBuiltins = []string{
		"Type", "Prop", "Sort", "Nat", "Int", "Bool", "List", "Option", "String",
		"IO", "Vector", "Finite", "Set", "StateT", "ExceptT", "Fin",
	}
)

// LeanLexer highlights Lean 4 code fences (```lean). It is registered with
// chroma so goldmark-highlighting finds it by name.
var LeanLexer = lexers.Register(chroma.MustNewLexer(
	&chroma.Config{
		Name:      "Lean",
		Aliases:   []string{"lean", "lean4"},
		Filenames: []string{"*.lean"},
		MimeTypes: []string{"text/x-lean"},
	},
	leanRules,
))

func leanRules() chroma.Rules {
	return chroma.Rules{
		"root": {
			{Pattern: `\s+`, Type: chroma.Text},
			{Pattern: `--[^\n]*`, Type: chroma.CommentSingle},
			{Pattern: `/-`, Type: chroma.CommentMultiline, Mutator: chroma.Push("comment")},
			{Pattern: `"(\\\\|\\"|[^"])*"`, Type: chroma.LiteralString},
			{Pattern: `'(\\.|[^'\\])'`, Type: chroma.LiteralStringChar},
			{Pattern: `#(check|eval|reduce|print|simp|synth)\b[^\n]*`, Type: chroma.CommentPreproc},
			{Pattern: `@\[[^\]]*\]|@[A-Za-z_][A-Za-z0-9_.]*`, Type: chroma.NameAttribute},
			{Pattern: "`[A-Za-z_][A-Za-z0-9_.']*", Type: chroma.LiteralStringSymbol},
			{Pattern: `\?_?\w*`, Type: chroma.NameVariable},
			{Pattern: chroma.Words(`\b`, `\b`, leanKeywords...), Type: chroma.Keyword},
			{Pattern: chroma.Words(`\b`, `\b`, leanLiterals...), Type: chroma.KeywordConstant},
			{Pattern: chroma.Words(`\b`, `\b`, leanBuiltins...), Type: chroma.NameBuiltin},
			{Pattern: `:=|::|\*\*|->|←|→|↔|λ|∀|∃|≤|≥|≠|==|=|<|>|∧|∨|¬|⊢|⟨|⟩|∑|∏`, Type: chroma.Operator},
			{Pattern: `0x[0-9a-fA-F]+|\d+(\.\d+)?([eE][+-]?\d+)?`, Type: chroma.LiteralNumber},
			{Pattern: `[\p{L}_][\p{L}\p{N}_.'!?]*`, Type: chroma.Name},
			{Pattern: `[(){}\[\],.:;|]`, Type: chroma.Punctuation},
			{Pattern: `.`, Type: chroma.Text},
		},
		// Lean block comments nest.
		"comment": {
			{Pattern: `/-`, Type: chroma.CommentMultiline, Mutator: chroma.Push("comment")},
			{Pattern: `-/`, Type: chroma.CommentMultiline, Mutator: chroma.Pop(1)},
			{Pattern: `[^/-]+`, Type: chroma.CommentMultiline},
			{Pattern: `[/-]`, Type: chroma.CommentMultiline},
		},
	}
}
