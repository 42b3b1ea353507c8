package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadEscape          Code = 1003
	LexBadNumber          Code = 1004
	LexBadIndent          Code = 1005

	// Синтаксические
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynExpectExpression    Code = 2002
	SynExpectColon         Code = 2003
	SynExpectNewline       Code = 2004
	SynExpectIdentifier    Code = 2005
	SynExpectRightParen    Code = 2006
	SynExpectRightBracket  Code = 2007
	SynInvalidAssignTarget Code = 2008
	SynExpectIndentedBlock Code = 2009
	SynForMissingIn        Code = 2010
	SynClassBodyExpectDef  Code = 2011
	SynSuperExpectDot      Code = 2012
	SynExpectLeftParen     Code = 2013
	SynTooManyErrors       Code = 2099

	// Статические ошибки областей видимости
	ScpInfo                   Code = 3000
	ScpReturnOutsideFunction  Code = 3001
	ScpThisOutsideClass       Code = 3002
	ScpSuperOutsideClass      Code = 3003
	ScpSuperWithoutSuperclass Code = 3004
	ScpSelfInheritance        Code = 3005

	// Ошибки времени выполнения
	RunInfo        Code = 4000
	RunNameError   Code = 4001
	RunTypeError   Code = 4002
	RunNativeError Code = 4003
)

var codeTitle = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexBadEscape:          "Invalid escape sequence",
	LexBadNumber:          "Malformed number literal",
	LexBadIndent:          "Tab used for indentation",

	SynInfo:                "Syntax information",
	SynUnexpectedToken:     "Unexpected token",
	SynExpectExpression:    "Expected expression",
	SynExpectColon:         "Expected ':'",
	SynExpectNewline:       "Expected end of line",
	SynExpectIdentifier:    "Expected identifier",
	SynExpectRightParen:    "Expected ')'",
	SynExpectRightBracket:  "Expected ']'",
	SynInvalidAssignTarget: "Invalid assignment target",
	SynExpectIndentedBlock: "Expected an indented block",
	SynForMissingIn:        "Expected 'in' in for loop",
	SynClassBodyExpectDef:  "Class body may only contain methods",
	SynSuperExpectDot:      "Expected '.' after 'super'",
	SynExpectLeftParen:     "Expected '('",
	SynTooManyErrors:       "Too many syntax errors",

	ScpInfo:                   "Scope information",
	ScpReturnOutsideFunction:  "'return' outside function",
	ScpThisOutsideClass:       "'self' outside class",
	ScpSuperOutsideClass:      "'super' outside class",
	ScpSuperWithoutSuperclass: "'super' in class without superclass",
	ScpSelfInheritance:        "Class inherits from itself",

	RunInfo:        "Runtime information",
	RunNameError:   "NameError",
	RunTypeError:   "TypeError",
	RunNativeError: "Native function failed",
}

// ID is the stable short form used in golden files and CLI output.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SCP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("RUN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if t, ok := codeTitle[c]; ok {
		return t
	}
	return codeTitle[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsRuntime reports whether the code belongs to the RUN group.
func (c Code) IsRuntime() bool { return c >= RunInfo && c < 5000 }
