package assistant

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Request is one prompt sent to a language model. JSONObject asks the model
// to answer with a single JSON object.
type Request struct {
	Messages    []Message
	JSONObject  bool
	Temperature float32
	MaxTokens   int
}

func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
