package output

// Card is one completed (term, definition) pair in input order.
type Card struct {
	term       string
	definition string
}

func NewCard(term string, definition string) Card {
	return Card{
		term:       term,
		definition: definition,
	}
}

func (c Card) Term() string {
	return c.term
}

func (c Card) Definition() string {
	return c.definition
}

// Format selects the output artifact kind.
type Format string

const (
	FormatAuto Format = "auto"
	FormatAnki Format = "anki"
	FormatText Format = "text"
)
