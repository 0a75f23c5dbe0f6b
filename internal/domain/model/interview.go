package model

type ConversationRole string

const (
	RoleInterviewee ConversationRole = "user"
	RoleInterviewer ConversationRole = "model"
)

func (r ConversationRole) Valid() bool {
	return r == RoleInterviewee || r == RoleInterviewer
}

type MessagePart struct {
	Text string `json:"text"`
}

// ConversationMessage is one turn in an interview transcript. The transcript
// is append-only for the duration of a session and discarded afterwards.
type ConversationMessage struct {
	Role  ConversationRole `json:"role"`
	Parts []MessagePart    `json:"parts"`
}
