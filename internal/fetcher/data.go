package fetcher

// Definition is the per-term fetch result: rendered (or raw, for the stub
// variant) definition text plus the cache-hit flag.
type Definition struct {
	text      string
	fromCache bool
}

func NewDefinition(text string, fromCache bool) Definition {
	return Definition{
		text:      text,
		fromCache: fromCache,
	}
}

// Text returns the definition text.
func (d Definition) Text() string {
	return d.text
}

// FromCache reports whether the definition was served from the cache
// without a remote call.
func (d Definition) FromCache() bool {
	return d.fromCache
}

// OpenAI-compatible chat completions wire format

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}
