package freq

import "sort"

// DefaultLanguage buckets records that carry no language tag.
const DefaultLanguage = "und"

// LanguageMap groups one Table per language tag. Like Table it is not
// safe for concurrent use.
type LanguageMap map[string]*Table

// NewLanguageMap creates an empty LanguageMap.
func NewLanguageMap() LanguageMap {
	return make(LanguageMap)
}

// Table returns the Table for lang, creating it if absent. An empty lang
// maps to DefaultLanguage.
func (m LanguageMap) Table(lang string) *Table {
	if lang == "" {
		lang = DefaultLanguage
	}
	t, ok := m[lang]
	if !ok {
		t = NewTable()
		m[lang] = t
	}
	return t
}

// Merge folds every per-language table from other into m.
func (m LanguageMap) Merge(other LanguageMap) {
	for lang, table := range other {
		m.Table(lang).Merge(table)
	}
}

// Combined returns a single Table summing counts across all languages.
func (m LanguageMap) Combined() *Table {
	combined := NewTable()
	for _, table := range m {
		combined.Merge(table)
	}
	return combined
}

// Languages returns the language tags present, sorted ascending.
func (m LanguageMap) Languages() []string {
	langs := make([]string, 0, len(m))
	for lang := range m {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Total returns the sum of counts across all languages.
func (m LanguageMap) Total() uint64 {
	var total uint64
	for _, table := range m {
		total += table.Total()
	}
	return total
}
