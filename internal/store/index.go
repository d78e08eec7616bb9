package store

import (
	"context"
	"fmt"

	"github.com/qurankit/qurankit/internal/quran"
)

// LoadQuran reads the scripture index tables (suras, pages, juzs, hizbs)
// from the Arabic verse database.
func (s *SQLiteTextStore) LoadQuran(ctx context.Context) (*quran.Quran, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, fmt.Errorf("store closed")
	}

	suras, err := s.loadSuras(ctx)
	if err != nil {
		return nil, err
	}

	pages, err := loadDivisions(ctx, s, "pages", func(number int, first quran.AyahNumber) quran.Page {
		return quran.Page{Number: number, First: first}
	})
	if err != nil {
		return nil, err
	}
	juzs, err := loadDivisions(ctx, s, "juzs", func(number int, first quran.AyahNumber) quran.Juz {
		return quran.Juz{Number: number, First: first}
	})
	if err != nil {
		return nil, err
	}
	hizbs, err := loadDivisions(ctx, s, "hizbs", func(number int, first quran.AyahNumber) quran.Hizb {
		return quran.Hizb{Number: number, First: first}
	})
	if err != nil {
		return nil, err
	}

	return quran.New(suras, pages, juzs, hizbs), nil
}

func (s *SQLiteTextStore) loadSuras(ctx context.Context) ([]quran.Sura, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT number, arabic_name, transliterated_name, ayah_count FROM suras ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("load suras: %w", err)
	}
	defer rows.Close()

	var suras []quran.Sura
	for rows.Next() {
		var sura quran.Sura
		if err := rows.Scan(&sura.Number, &sura.ArabicName, &sura.TransliteratedName, &sura.AyahCount); err != nil {
			return nil, fmt.Errorf("scan sura row: %w", err)
		}
		suras = append(suras, sura)
	}
	return suras, rows.Err()
}

func loadDivisions[T any](ctx context.Context, s *SQLiteTextStore, table string, build func(int, quran.AyahNumber) T) ([]T, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT number, sura, ayah FROM %s ORDER BY number`, table))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var number int
		var first quran.AyahNumber
		if err := rows.Scan(&number, &first.Sura, &first.Ayah); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		out = append(out, build(number, first))
	}
	return out, rows.Err()
}
