package locations

import (
	"strings"

	"github.com/biter777/countries"
)

//Lookup resolves ISO3 country codes to display names
type Lookup interface {
	CountryName(code string) (string, bool)
}

//New copies names into a read-only lookup keyed by upper cased code
func New(names map[string]string) Lookup {
	l := &lookup{names: make(map[string]string, len(names))}
	l.add(names)
	return l
}

//NewWithISO3166 knows the english name of every ISO 3166-1 country. Names given by
//the caller take precedence.
func NewWithISO3166(names map[string]string) Lookup {
	all := countries.All()

	l := &lookup{names: make(map[string]string, len(all)+len(names))}
	for _, c := range all {
		l.set(c.Alpha3(), c.String())
	}
	l.add(names)

	return l
}

type lookup struct {
	names map[string]string
}

func (l *lookup) add(names map[string]string) {
	for code, name := range names {
		l.set(code, name)
	}
}

func (l *lookup) set(code, name string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || name == "" {
		return
	}
	l.names[code] = name
}

func (l *lookup) CountryName(code string) (string, bool) {
	name, ok := l.names[strings.ToUpper(strings.TrimSpace(code))]
	return name, ok
}
