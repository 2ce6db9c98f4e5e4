// Package textnorm normaliza texto para busca: minúsculas e sem acentos
// ("Água" e "agua" casam). Usado na busca de produtos por nome.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var fold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize devolve s em minúsculas e sem marcas diacríticas.
func Normalize(s string) string {
	out, _, err := transform.String(fold, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
