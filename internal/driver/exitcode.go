package driver

// Exit codes follow sysexits(3).
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65 // lex, parse or scope error
	ExitSoftware = 70 // runtime error
	ExitIOErr    = 74
)
