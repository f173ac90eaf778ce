package legal

import (
	"fmt"
	"time"
)

type relativeUnit struct {
	limit    float64 // exclusive upper bound in seconds
	size     float64 // seconds per unit
	singular string
	plural   string
}

var relativeUnits = []relativeUnit{
	{limit: 3600, size: 60, singular: "minuto", plural: "minutos"},
	{limit: 86400, size: 3600, singular: "hora", plural: "horas"},
	{limit: 604800, size: 86400, singular: "dia", plural: "dias"},
	{limit: 2592000, size: 604800, singular: "semana", plural: "semanas"},
	{limit: 31536000, size: 2592000, singular: "mês", plural: "meses"},
}

// FormatRelativeTime renders how long ago t happened, in Portuguese
// ("agora mesmo", "há 5 minutos", "há 1 mês", ...).
func FormatRelativeTime(t, now time.Time) string {
	seconds := now.Sub(t).Seconds()
	if seconds < 60 {
		return "agora mesmo"
	}
	for _, u := range relativeUnits {
		if seconds < u.limit {
			return plural(int(seconds/u.size), u.singular, u.plural)
		}
	}
	return plural(int(seconds/31536000), "ano", "anos")
}

func plural(n int, singular, pluralForm string) string {
	word := pluralForm
	if n == 1 {
		word = singular
	}
	return fmt.Sprintf("há %d %s", n, word)
}
