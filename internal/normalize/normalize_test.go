package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohmanhakim/termdeck/internal/normalize"
)

func TestCleanDefinition_TrimsPlainMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "SurroundingWhitespaceDropped",
			input: "  \n**Runway** — запас времени.\n\n",
			want:  "**Runway** — запас времени.",
		},
		{
			name:  "MarkdownUntouched",
			input: "**Churn** — отток клиентов.\n\n*Пример*: 5% в месяц.",
			want:  "**Churn** — отток клиентов.\n\n*Пример*: 5% в месяц.",
		},
		{
			name:  "AngleBracketInProseIsNotHTML",
			input: "Метрика a < b не является разметкой.",
			want:  "Метрика a < b не является разметкой.",
		},
		{
			name:  "WhitespaceOnly",
			input: "   \n\t",
			want:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalize.CleanDefinition(tc.input)
			require.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCleanDefinition_ConvertsLeakedHTML(t *testing.T) {
	got, err := normalize.CleanDefinition("<p><b>Runway</b> — запас времени.</p>")
	require.Nil(t, err)

	assert.Contains(t, got, "**Runway**")
	assert.NotContains(t, got, "<p>")
	assert.NotContains(t, got, "<b>")
}

func TestCleanDefinition_Deterministic(t *testing.T) {
	input := "<p>Определение с <em>курсивом</em>.</p>"

	first, err := normalize.CleanDefinition(input)
	require.Nil(t, err)
	second, err := normalize.CleanDefinition(input)
	require.Nil(t, err)

	assert.Equal(t, first, second)
}
