package catalog

import (
	"context"
	"database/sql"
	"fmt"

	// Register sqlite driver
	_ "modernc.org/sqlite"

	"github.com/obinss/CoCreate-MVP/internal/domain/item"
)

// ActiveStatus is the listing status served to buyers.
const ActiveStatus = "active"

const activeProductsQuery = `
SELECT id, seller_id, title, description, category, condition, quantity,
       unit_of_measure, price, market_price, location_lat, location_long,
       location_name, status, created_at
FROM products
WHERE status = ?
ORDER BY created_at DESC, id`

// SQLite reads active listings from the marketplace database's products table.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the database at dsn. The caller should call Close.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dsn, err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	return &SQLite{db: db}, nil
}

// NewSQLite wraps an already opened database handle.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Name identifies the source in logs and metrics.
func (s *SQLite) Name() string { return "sqlite" }

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Items returns every active product, newest first.
func (s *SQLite) Items(ctx context.Context) ([]item.Item, error) {
	rows, err := s.db.QueryContext(ctx, activeProductsQuery, ActiveStatus)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []item.Item
	for rows.Next() {
		var (
			it                    item.Item
			description, unit     sql.NullString
			sellerID, createdAt   sql.NullString
			condition             string
			quantity              sql.NullInt64
			marketPrice, lat, lon sql.NullFloat64
		)
		if err := rows.Scan(
			&it.ID, &sellerID, &it.Title, &description, &it.Category, &condition, &quantity,
			&unit, &it.Price, &marketPrice, &lat, &lon,
			&it.LocationName, &it.Status, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		it.SellerID = sellerID.String
		it.Description = description.String
		it.Condition = item.Condition(condition)
		it.Quantity = int(quantity.Int64)
		it.Unit = unit.String
		it.MarketPrice = marketPrice.Float64
		it.Latitude = lat.Float64
		it.Longitude = lon.Float64
		it.CreatedAt = createdAt.String
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return items, nil
}

// Ping checks the database connection.
func (s *SQLite) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	return nil
}
