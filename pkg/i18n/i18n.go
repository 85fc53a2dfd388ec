// Package i18n holds the console's message catalog.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"lockstats/pkg/timefmt"
)

// Message keys. The key doubles as the English text.
const (
	HeaderID        = "ID"
	HeaderResource  = "Resource"
	HeaderDuration  = "Duration"
	HeaderLockCount = "Lock count"
	HeaderHost      = "Host"
	HeaderGained    = "Gained"
	HeaderReleased  = "Released"
	HeaderPID       = "PID"

	Previous      = "Previous"
	Next          = "Next"
	DownloadAs    = "Download table data as"
	Download      = "Download"
	NothingToShow = "Nothing to display"
	LockOverview  = "Lock statistics"
	LockHistory   = "Lock history"

	unitYear  = "year"
	unitYears = "years"
	unitDay   = "day"
	unitDays  = "days"
	unitHour  = "hour"
	unitHours = "hours"
	unitMin   = "min"
	unitMins  = "mins"
	unitSec   = "sec"
	unitSecs  = "secs"
	unitNow   = "now"
)

// keys lists every message key; each catalog translates all of them.
var keys = []string{
	HeaderID, HeaderResource, HeaderDuration, HeaderLockCount, HeaderHost, HeaderGained, HeaderReleased, HeaderPID,
	Previous, Next, DownloadAs, Download, NothingToShow, LockOverview, LockHistory,
	unitYear, unitYears, unitDay, unitDays, unitHour, unitHours, unitMin, unitMins, unitSec, unitSecs, unitNow,
}

var supported = []language.Tag{language.English, language.German, language.French}

var matcher = language.NewMatcher(supported)

var translations = map[language.Tag]map[string]string{
	language.German: {
		HeaderID:        "ID",
		HeaderResource:  "Ressource",
		HeaderDuration:  "Dauer",
		HeaderLockCount: "Anzahl Sperren",
		HeaderHost:      "Host",
		HeaderGained:    "Erhalten",
		HeaderReleased:  "Freigegeben",
		HeaderPID:       "PID",
		Previous:        "Zurück",
		Next:            "Weiter",
		DownloadAs:      "Tabellendaten herunterladen als",
		Download:        "Herunterladen",
		NothingToShow:   "Keine Einträge",
		LockOverview:    "Sperrstatistik",
		LockHistory:     "Sperrverlauf",
		unitYear:        "Jahr",
		unitYears:       "Jahre",
		unitDay:         "Tag",
		unitDays:        "Tage",
		unitHour:        "Std.",
		unitHours:       "Std.",
		unitMin:         "Min.",
		unitMins:        "Min.",
		unitSec:         "Sek.",
		unitSecs:        "Sek.",
		unitNow:         "jetzt",
	},
	language.French: {
		HeaderID:        "ID",
		HeaderResource:  "Ressource",
		HeaderDuration:  "Durée",
		HeaderLockCount: "Nombre de verrous",
		HeaderHost:      "Hôte",
		HeaderGained:    "Obtenu",
		HeaderReleased:  "Libéré",
		HeaderPID:       "PID",
		Previous:        "Précédent",
		Next:            "Suivant",
		DownloadAs:      "Télécharger les données du tableau en",
		Download:        "Télécharger",
		NothingToShow:   "Rien à afficher",
		LockOverview:    "Statistiques des verrous",
		LockHistory:     "Historique des verrous",
		unitYear:        "an",
		unitYears:       "ans",
		unitDay:         "jour",
		unitDays:        "jours",
		unitHour:        "heure",
		unitHours:       "heures",
		unitMin:         "min",
		unitMins:        "min",
		unitSec:         "s",
		unitSecs:        "s",
		unitNow:         "maintenant",
	},
}

func init() {
	for tag, strs := range translations {
		for key, msg := range strs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
}

// Match picks the best supported language for an Accept-Language header.
// It falls back to English.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return language.English
	}
	return supported[idx]
}

// Translator renders catalog strings in one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Translator for tag.
func New(tag language.Tag) *Translator {
	return &Translator{tag: tag, printer: message.NewPrinter(tag)}
}

// Tag returns the translator's language.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// String returns the translation of key.
func (t *Translator) String(key string) string {
	return t.printer.Sprintf(key)
}

// Units returns the elapsed-time vocabulary.
func (t *Translator) Units() timefmt.Units {
	return timefmt.Units{
		Year: t.String(unitYear), Years: t.String(unitYears),
		Day: t.String(unitDay), Days: t.String(unitDays),
		Hour: t.String(unitHour), Hours: t.String(unitHours),
		Min: t.String(unitMin), Mins: t.String(unitMins),
		Sec: t.String(unitSec), Secs: t.String(unitSecs),
		Now: t.String(unitNow),
	}
}
