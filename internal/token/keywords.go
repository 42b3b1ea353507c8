package token

var keywords = map[string]Kind{
	"and":      KwAnd,
	"or":       KwOr,
	"if":       KwIf,
	"elif":     KwElif,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"def":      KwDef,
	"class":    KwClass,
	"return":   KwReturn,
	"print":    KwPrint,
	"global":   KwGlobal,
	"nonlocal": KwNonlocal,
	"self":     KwSelf,
	"super":    KwSuper,
	"True":     KwTrue,
	"False":    KwFalse,
	"None":     KwNone,
	"pass":     KwPass,
}

// LookupKeyword возвращает вид ключевого слова.
// Регистр важен: True/False/None пишутся с заглавной, остальные строчными.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
