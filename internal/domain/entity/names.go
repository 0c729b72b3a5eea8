package entity

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName recorta espacios y normaliza a NFC, para que "Café" escrito con
// distintas secuencias Unicode se guarde igual.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
