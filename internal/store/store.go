package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/models"
)

// Store persists tracked ASINs. It keeps a latest-state pointer per ASIN
// plus an append-only price history; history rows are never updated.
type Store struct {
	conn *sql.DB
}

// Open opens (and initializes) the sqlite database at path.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	s := &Store{conn: conn}
	if err := s.init(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tracked_asins (
		asin TEXT PRIMARY KEY,
		title TEXT,
		image_url TEXT,
		marketplace TEXT NOT NULL DEFAULT 'amazon.co.za',
		price REAL,
		currency TEXT NOT NULL DEFAULT 'ZAR',
		seller TEXT NOT NULL DEFAULT 'Unknown',
		rating REAL,
		review_count INTEGER,
		availability TEXT NOT NULL DEFAULT 'unknown',
		is_amazon_seller BOOLEAN NOT NULL DEFAULT 0,
		buybox_status TEXT NOT NULL DEFAULT 'unknown',
		scraped_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS price_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		asin TEXT NOT NULL,
		marketplace TEXT NOT NULL,
		price REAL,
		seller TEXT,
		status TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_price_history_asin ON price_history(asin);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SaveSnapshot upserts the latest-state row for the snapshot's ASIN and, when
// the snapshot carries a price, appends a history row. created_at is
// preserved on update.
func (s *Store) SaveSnapshot(snap models.ProductSnapshot) error {
	_, err := s.conn.Exec(`
		INSERT INTO tracked_asins
			(asin, title, image_url, marketplace, price, currency, seller,
			 rating, review_count, availability, is_amazon_seller, buybox_status,
			 scraped_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(asin) DO UPDATE SET
			title = excluded.title,
			image_url = excluded.image_url,
			marketplace = excluded.marketplace,
			price = excluded.price,
			currency = excluded.currency,
			seller = excluded.seller,
			rating = excluded.rating,
			review_count = excluded.review_count,
			availability = excluded.availability,
			is_amazon_seller = excluded.is_amazon_seller,
			buybox_status = excluded.buybox_status,
			scraped_at = excluded.scraped_at,
			updated_at = CURRENT_TIMESTAMP`,
		snap.ASIN, snap.Title, snap.ImageURL, snap.Marketplace,
		nullFloat(snap.Price), snap.Currency, snap.Seller,
		nullFloat(snap.Rating), nullInt(snap.ReviewCount),
		string(snap.Availability), snap.IsAmazonSeller,
		string(snap.BuyboxStatus), snap.ScrapedAt,
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.ASIN, err)
	}

	// History rows are only meaningful with a known price.
	if snap.Price == nil {
		return nil
	}
	_, err = s.conn.Exec(
		"INSERT INTO price_history (asin, marketplace, price, seller, status) VALUES (?, ?, ?, ?, ?)",
		snap.ASIN, snap.Marketplace, *snap.Price, snap.Seller, string(snap.BuyboxStatus),
	)
	if err != nil {
		return fmt.Errorf("append history %s: %w", snap.ASIN, err)
	}
	return nil
}

// Latest returns the latest snapshot for an ASIN, or nil if not tracked.
func (s *Store) Latest(asin string) (*models.ProductSnapshot, error) {
	row := s.conn.QueryRow(selectSnapshot+" WHERE asin = ?", asin)
	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ListTracked returns the latest snapshot of every tracked ASIN, most
// recently updated first.
func (s *Store) ListTracked() ([]models.ProductSnapshot, error) {
	rows, err := s.conn.Query(selectSnapshot + " ORDER BY updated_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []models.ProductSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, *snap)
	}
	return snaps, rows.Err()
}

// History returns up to limit history rows for an ASIN, newest first.
func (s *Store) History(asin string, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.conn.Query(
		`SELECT asin, marketplace, price, seller, status, timestamp
		 FROM price_history WHERE asin = ? ORDER BY timestamp DESC LIMIT ?`,
		asin, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var price sql.NullFloat64
		var seller, status sql.NullString
		if err := rows.Scan(&e.ASIN, &e.Marketplace, &price, &seller, &status, &e.Timestamp); err != nil {
			return nil, err
		}
		if price.Valid {
			e.Price = &price.Float64
		}
		e.Seller = seller.String
		e.Status = models.BuyboxStatus(status.String)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Remove deletes an ASIN's latest state and its entire history.
func (s *Store) Remove(asin string) error {
	if _, err := s.conn.Exec("DELETE FROM price_history WHERE asin = ?", asin); err != nil {
		return err
	}
	_, err := s.conn.Exec("DELETE FROM tracked_asins WHERE asin = ?", asin)
	return err
}

// Stats summarizes the tracked set.
func (s *Store) Stats() (models.Stats, error) {
	var st models.Stats
	err := s.conn.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN is_amazon_seller THEN 1 ELSE 0 END), 0),
		       COALESCE(AVG(price), 0)
		FROM tracked_asins`,
	).Scan(&st.TotalTracked, &st.AmazonWins, &st.AvgBuyboxPrice)
	if err != nil {
		return st, err
	}
	st.ThirdPartyWins = st.TotalTracked - st.AmazonWins
	return st, nil
}

const selectSnapshot = `
	SELECT asin, title, image_url, marketplace, price, currency, seller,
	       rating, review_count, availability, is_amazon_seller,
	       buybox_status, scraped_at
	FROM tracked_asins`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*models.ProductSnapshot, error) {
	var snap models.ProductSnapshot
	var title, imageURL, availability, status sql.NullString
	var price, rating sql.NullFloat64
	var reviewCount sql.NullInt64
	var scrapedAt sql.NullTime

	err := row.Scan(&snap.ASIN, &title, &imageURL, &snap.Marketplace,
		&price, &snap.Currency, &snap.Seller, &rating, &reviewCount,
		&availability, &snap.IsAmazonSeller, &status, &scrapedAt)
	if err != nil {
		return nil, err
	}

	snap.Title = title.String
	snap.ImageURL = imageURL.String
	if price.Valid {
		snap.Price = &price.Float64
	}
	if rating.Valid {
		snap.Rating = &rating.Float64
	}
	if reviewCount.Valid {
		n := int(reviewCount.Int64)
		snap.ReviewCount = &n
	}
	snap.Availability = models.Availability(availability.String)
	snap.BuyboxStatus = models.BuyboxStatus(status.String)
	if scrapedAt.Valid {
		snap.ScrapedAt = scrapedAt.Time
	}
	return &snap, nil
}

// nullFloat converts an optional float for sqlite binding.
func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
