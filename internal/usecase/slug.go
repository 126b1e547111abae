package usecase

import "strings"

var transliterations = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"à", "a", "á", "a", "â", "a",
	"è", "e", "é", "e", "ê", "e",
	"ì", "i", "í", "i", "î", "i",
	"ò", "o", "ó", "o", "ô", "o",
	"ù", "u", "ú", "u", "û", "u",
	"ç", "c", "ñ", "n",
)

// Slugify derives a URL-safe identifier from a company name: lowercase,
// common diacritics transliterated, every other non-alphanumeric run
// collapsed to a single hyphen, no leading or trailing hyphens. The
// function is idempotent: Slugify(Slugify(s)) == Slugify(s).
func Slugify(name string) string {
	s := transliterations.Replace(strings.ToLower(name))

	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
