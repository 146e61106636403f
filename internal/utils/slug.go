package utils

import "strings"

var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ö", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
)

// Slugify gera o identificador da categoria a partir do nome
// (ex: "Linho Puro" -> "linho-puro", "Colas & Adesivos" -> "colas-adesivos")
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = accentReplacer.Replace(s)

	var b strings.Builder
	lastDash := true // evita começar com hífen
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
