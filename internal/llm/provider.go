package llm

// Provider is the narrow surface the agent needs from a language model
// backend: one prompt in, one completion out.
type Provider interface {
	GetModel() string
	Generate(prompt string) (string, error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

var SupportedProviders = []string{"ollama", "openai"}
