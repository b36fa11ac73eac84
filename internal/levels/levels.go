package levels

// Level identifies one of the six primary school years
// (Année Fondamentale).
type Level string

const (
	AF1 Level = "AF1"
	AF2 Level = "AF2"
	AF3 Level = "AF3"
	AF4 Level = "AF4"
	AF5 Level = "AF5"
	AF6 Level = "AF6"
)

// Valid reports whether the level is one of the configured school years.
func (l Level) Valid() bool {
	_, ok := subjectTable[l]
	return ok
}

// DefaultMaxTotal is used when a level has no scoring table. Keeping the
// degraded display functional is preferred over failing the whole report;
// callers can observe the fallback through the FallbackObserver hook.
const DefaultMaxTotal = 200

// subjectTable is the official per-level scoring table: points per subject
// per school year. The sum of a level's points is the level's maximum
// possible term total.
var subjectTable = map[Level]map[string]int{
	AF1: {
		"islamic_education":  40,
		"arabic_language":    80,
		"mathematics":        40,
		"civic_education":    15,
		"art_education":      15,
		"physical_education": 10,
	},
	AF2: {
		"islamic_education":  30,
		"arabic_language":    50,
		"mathematics":        40,
		"civic_education":    15,
		"art_education":      15,
		"french_language":    40,
		"physical_education": 10,
	},
	AF3: {
		"islamic_education":  30,
		"arabic_language":    50,
		"mathematics":        40,
		"civic_education":    10,
		"art_education":      10,
		"french_language":    30,
		"physical_education": 10,
		"social_studies":     10,
		"natural_sciences":   10,
	},
	AF4: {
		"islamic_education":  30,
		"arabic_language":    50,
		"mathematics":        40,
		"civic_education":    10,
		"art_education":      10,
		"french_language":    30,
		"physical_education": 10,
		"social_studies":     10,
		"natural_sciences":   10,
	},
	AF5: {
		"islamic_education":  30,
		"arabic_language":    50,
		"mathematics":        40,
		"civic_education":    10,
		"art_education":      10,
		"physical_education": 10,
		"french_language":    30,
		"social_studies":     10,
		"natural_sciences":   10,
	},
	AF6: {
		"islamic_education":  30,
		"arabic_language":    50,
		"mathematics":        40,
		"civic_education":    10,
		"art_education":      10,
		"physical_education": 10,
		"french_language":    30,
		"social_studies":     10,
		"natural_sciences":   10,
	},
}

// subjectNames maps subject keys to their Arabic display names used on
// official report cards.
var subjectNames = map[string]string{
	"islamic_education":  "التربية الإسلامية",
	"arabic_language":    "اللغة العربية",
	"mathematics":        "الرياضيات",
	"civic_education":    "التربية المدنية",
	"art_education":      "التربية الفنية",
	"physical_education": "التربية البدنية",
	"activities":         "أنشطة",
	"social_studies":     "الاجتماعيات (تاريخ/جغرافيا)",
	"natural_sciences":   "العلوم الطبيعية",
	"french_language":    "اللغة الفرنسية",
}

// subjectNamesFR maps subject keys to the French labels used on the
// bilingual official report.
var subjectNamesFR = map[string]string{
	"islamic_education":  "Education Islamique",
	"arabic_language":    "Langue arabe",
	"mathematics":        "Mathématiques",
	"civic_education":    "Education Civique",
	"art_education":      "Education Technique",
	"physical_education": "Education Sportive",
	"activities":         "Activités",
	"social_studies":     "Histoire Géographie",
	"natural_sciences":   "Sciences Naturelles",
	"french_language":    "Français",
}

// FallbackObserver is notified whenever a computation had to fall back to
// DefaultMaxTotal because a level has no scoring table.
type FallbackObserver func(level Level)

// Provider exposes the immutable level configuration. The zero value is
// usable; New attaches an optional fallback observer.
type Provider struct {
	onFallback FallbackObserver
}

// New constructs a Provider. observer may be nil.
func New(observer FallbackObserver) *Provider {
	return &Provider{onFallback: observer}
}

// Subjects returns the subject→max-score table for a level, or nil when
// the level is not configured. The returned map must not be mutated.
func (p *Provider) Subjects(level Level) map[string]int {
	return subjectTable[level]
}

// MaxScore returns the configured maximum for a subject at a level and
// whether the subject is configured.
func (p *Provider) MaxScore(level Level, subject string) (int, bool) {
	subjects, ok := subjectTable[level]
	if !ok {
		return 0, false
	}
	max, ok := subjects[subject]
	return max, ok
}

// MaxTotal returns the maximum possible term total for a level: the sum
// of all subject points. Unconfigured levels fall back to DefaultMaxTotal.
func (p *Provider) MaxTotal(level Level) int {
	subjects, ok := subjectTable[level]
	if !ok {
		if p != nil && p.onFallback != nil {
			p.onFallback(level)
		}
		return DefaultMaxTotal
	}
	total := 0
	for _, points := range subjects {
		total += points
	}
	return total
}

// SubjectName returns the Arabic display name for a subject key, falling
// back to the key itself.
func SubjectName(key string) string {
	if name, ok := subjectNames[key]; ok {
		return name
	}
	return key
}

// SubjectNameFR returns the French display name for a subject key,
// falling back to the key itself.
func SubjectNameFR(key string) string {
	if name, ok := subjectNamesFR[key]; ok {
		return name
	}
	return key
}

// All returns every configured level in school-year order.
func All() []Level {
	return []Level{AF1, AF2, AF3, AF4, AF5, AF6}
}
