// Package quran models the scripture index: suras, verses, and the
// traditional reading divisions (juzs, hizbs, pages). The index is read-only;
// it is loaded once at startup and shared by every search call.
package quran

// AyahNumber addresses a single verse by (sura number, ayah number).
// Both components are 1-based.
type AyahNumber struct {
	Sura int
	Ayah int
}

// Sura is one chapter of the corpus.
type Sura struct {
	Number             int
	ArabicName         string
	TransliteratedName string
	AyahCount          int
}

// FirstVerse returns the first verse of the sura.
func (s Sura) FirstVerse() AyahNumber {
	return AyahNumber{Sura: s.Number, Ayah: 1}
}

// Page is one page of the canonical mushaf layout.
type Page struct {
	Number int
	First  AyahNumber
}

// Juz is one of the 30 reading parts.
type Juz struct {
	Number int
	First  AyahNumber
}

// Hizb is one of the 60 reading groups (half a juz each).
type Hizb struct {
	Number int
	First  AyahNumber
}

// Quran is the complete scripture index. Collections are ordered by number
// and addressable through the lookup methods below.
type Quran struct {
	Suras []Sura
	Pages []Page
	Juzs  []Juz
	Hizbs []Hizb

	suraByNumber map[int]Sura
	pageByNumber map[int]Page
	juzByNumber  map[int]Juz
	hizbByNumber map[int]Hizb
}

// New builds an index from ordered collections.
func New(suras []Sura, pages []Page, juzs []Juz, hizbs []Hizb) *Quran {
	q := &Quran{
		Suras: suras,
		Pages: pages,
		Juzs:  juzs,
		Hizbs: hizbs,

		suraByNumber: make(map[int]Sura, len(suras)),
		pageByNumber: make(map[int]Page, len(pages)),
		juzByNumber:  make(map[int]Juz, len(juzs)),
		hizbByNumber: make(map[int]Hizb, len(hizbs)),
	}
	for _, s := range suras {
		q.suraByNumber[s.Number] = s
	}
	for _, p := range pages {
		q.pageByNumber[p.Number] = p
	}
	for _, j := range juzs {
		q.juzByNumber[j.Number] = j
	}
	for _, h := range hizbs {
		q.hizbByNumber[h.Number] = h
	}
	return q
}

// Sura returns the sura with the given number.
func (q *Quran) Sura(number int) (Sura, bool) {
	s, ok := q.suraByNumber[number]
	return s, ok
}

// Page returns the page with the given number.
func (q *Quran) Page(number int) (Page, bool) {
	p, ok := q.pageByNumber[number]
	return p, ok
}

// Juz returns the juz with the given number.
func (q *Quran) Juz(number int) (Juz, bool) {
	j, ok := q.juzByNumber[number]
	return j, ok
}

// Hizb returns the hizb with the given number.
func (q *Quran) Hizb(number int) (Hizb, bool) {
	h, ok := q.hizbByNumber[number]
	return h, ok
}

// Contains reports whether v addresses an existing verse.
func (q *Quran) Contains(v AyahNumber) bool {
	s, ok := q.suraByNumber[v.Sura]
	if !ok {
		return false
	}
	return v.Ayah >= 1 && v.Ayah <= s.AyahCount
}
