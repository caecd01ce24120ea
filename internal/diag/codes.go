package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode — на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnterminatedString Code = 1001
	LexUnterminatedChar   Code = 1002
	LexUnterminatedBlock  Code = 1003
	LexUnterminatedRaw    Code = 1004
	LexBadNumber          Code = 1005

	// Синтаксические (дерево токенов и структура impl-блока)
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnclosedDelim    Code = 2002
	SynStrayCloseDelim  Code = 2003
	SynExpectImplBlock  Code = 2004
	SynExpectMemberName Code = 2005
	SynMalformedAttr    Code = 2006

	// Биндинги и overrides
	BindInfo               Code = 3000
	BindMalformed          Code = 3001
	BindEmptyArgs          Code = 3002
	BindBadPlaceholder     Code = 3003
	BindUnresolvedOverride Code = 3004
	BindMalformedOverride  Code = 3005

	// I/O
	IOLoadFileError  Code = 9001
	IOWriteFileError Code = 9002
)

var codeNames = map[Code]string{
	UnknownCode:            "UNKNOWN",
	LexInfo:                "LEX-INFO",
	LexUnterminatedString:  "LEX-UNTERMINATED-STRING",
	LexUnterminatedChar:    "LEX-UNTERMINATED-CHAR",
	LexUnterminatedBlock:   "LEX-UNTERMINATED-BLOCK-COMMENT",
	LexUnterminatedRaw:     "LEX-UNTERMINATED-RAW-STRING",
	LexBadNumber:           "LEX-BAD-NUMBER",
	SynInfo:                "SYN-INFO",
	SynUnexpectedToken:     "SYN-UNEXPECTED-TOKEN",
	SynUnclosedDelim:       "SYN-UNCLOSED-DELIMITER",
	SynStrayCloseDelim:     "SYN-STRAY-CLOSE-DELIMITER",
	SynExpectImplBlock:     "SYN-EXPECT-IMPL-BLOCK",
	SynExpectMemberName:    "SYN-EXPECT-MEMBER-NAME",
	SynMalformedAttr:       "SYN-MALFORMED-ATTRIBUTE",
	BindInfo:               "BIND-INFO",
	BindMalformed:          "BIND-MALFORMED",
	BindEmptyArgs:          "BIND-EMPTY-ARGUMENT-LIST",
	BindBadPlaceholder:     "BIND-INVALID-PLACEHOLDER",
	BindUnresolvedOverride: "BIND-UNRESOLVED-OVERRIDE-TARGET",
	BindMalformedOverride:  "BIND-MALFORMED-OVERRIDE",
	IOLoadFileError:        "IO-LOAD-FILE",
	IOWriteFileError:       "IO-WRITE-FILE",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CODE-%04d", uint16(c))
}
