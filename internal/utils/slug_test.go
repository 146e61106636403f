package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"nome simples", "Linho Puro", "linho-puro"},
		{"acentos removidos", "Bouclé", "boucle"},
		{"e comercial vira hifen", "Colas & Adesivos", "colas-adesivos"},
		{"espacos nas bordas", "  Veludo Premium  ", "veludo-premium"},
		{"cedilha", "Cabeçalho", "cabecalho"},
		{"numeros mantidos", "Espuma D33", "espuma-d33"},
		{"ja normalizado", "tapetes", "tapetes"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.input))
		})
	}
}
