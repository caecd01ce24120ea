package driver

import (
	"implgen/internal/diag"
	"implgen/internal/lexer"
	"implgen/internal/source"
	"implgen/internal/token"
)

// TokenizeResult содержит результат токенизации одного файла.
type TokenizeResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file, for the tokenize inspection command.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}

	if maxDiagnostics <= 0 {
		maxDiagnostics = defaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiagnostics)
	toks := lexer.Tokenize(fileSet.Get(id), lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})

	return &TokenizeResult{
		FileSet: fileSet,
		FileID:  id,
		Tokens:  toks,
		Bag:     bag,
	}, nil
}
