package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"uvg-agent/internal/usecase"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected usecase.Intent
	}{
		{"empty", "", usecase.IntentUnknown},
		{"whitespace only", "   \t ", usecase.IntentUnknown},
		{"simple greeting", "hola", usecase.IntentGreeting},
		{"greeting with punctuation", "¡Hola! ¿cómo estás?", usecase.IntentGreeting},
		{"english greeting", "hi there", usecase.IntentGreeting},
		{"buenas", "buenas tardes", usecase.IntentGreeting},
		{"campus keyword", "¿Qué carreras ofrece la UVG?", usecase.IntentCampus},
		{"scholarship keyword", "quiero información sobre una beca", usecase.IntentCampus},
		{"campus name", "horarios del campus central", usecase.IntentCampus},
		{"unrelated", "¿cuál es la capital de Francia?", usecase.IntentUnknown},
		{
			name:     "long message containing greeting is not smalltalk",
			question: "hola quisiera que me explicaras con mucho detalle todo lo relacionado al tema de convalidaciones",
			expected: usecase.IntentUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, usecase.ClassifyIntent(tt.question))
		})
	}
}

func TestClassifyIntent_GreetingTokenCap(t *testing.T) {
	// Exactly 8 tokens with a greeting word still counts as a greeting.
	q := "hola " + strings.Repeat("amigo ", 7)
	assert.Equal(t, usecase.IntentGreeting, usecase.ClassifyIntent(strings.TrimSpace(q)))

	// Nine tokens no longer does.
	q = "hola " + strings.Repeat("amigo ", 8)
	assert.Equal(t, usecase.IntentUnknown, usecase.ClassifyIntent(strings.TrimSpace(q)))
}

func TestClassifyIntent_GreetingBeatsCampus(t *testing.T) {
	// A short greeting that also names the university is still a greeting.
	assert.Equal(t, usecase.IntentGreeting, usecase.ClassifyIntent("hola uvg"))
}
