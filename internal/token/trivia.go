package token

import "implgen/internal/source"

// TriviaKind classifies whitespace and comments preserved between tokens.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	// TriviaDocLine is an outer doc comment: /// ...
	TriviaDocLine
	// TriviaDocInner is an inner doc comment: //! ...
	TriviaDocInner
	// TriviaDocBlock is a block doc comment: /** ... */ or /*! ... */
	TriviaDocBlock
)

var triviaNames = [...]string{
	TriviaSpace:        "Space",
	TriviaNewline:      "Newline",
	TriviaLineComment:  "LineComment",
	TriviaBlockComment: "BlockComment",
	TriviaDocLine:      "DocLine",
	TriviaDocInner:     "DocInner",
	TriviaDocBlock:     "DocBlock",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "Unknown"
}

// Trivia is a run of whitespace or a comment attached to the following token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsDoc reports whether the trivia is a documentation comment.
// Doc comments are the only trivia the template substituter rewrites.
func (t Trivia) IsDoc() bool {
	switch t.Kind {
	case TriviaDocLine, TriviaDocInner, TriviaDocBlock:
		return true
	default:
		return false
	}
}
