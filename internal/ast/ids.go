package ast

// Identities are 1-based indexes into the Builder arenas. They double as
// node identity: an id is never reused within one Builder, so side tables
// keyed by ExprID (like the resolver hop table) stay valid for the whole
// session.
type (
	ProgramID uint32
	StmtID    uint32
	ExprID    uint32
	PayloadID uint32
)

const (
	NoProgramID ProgramID = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoPayloadID PayloadID = 0
)

func (id ProgramID) IsValid() bool { return id != NoProgramID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
