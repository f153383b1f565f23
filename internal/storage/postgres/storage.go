package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/maisonforma/storefront/internal/domain/errors"
	"github.com/maisonforma/storefront/internal/domain/model"
	"github.com/maisonforma/storefront/internal/domain/repository"
)

// querier abstracts the subset of pgx shared by pools and transactions, so
// the same repository code serves both inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pool interface {
	querier
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage is the repository.Store implementation backed by PostgreSQL.
type Storage struct {
	pool   pool
	logger *slog.Logger
}

var _ repository.Store = (*Storage)(nil)

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pgPool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pgPool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pgPool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{q: s.pool}
}

func (s *Storage) Inventory() repository.InventoryRepository {
	return &inventoryRepository{q: s.pool}
}

func (s *Storage) Events() repository.EventRepository {
	return &eventRepository{q: s.pool}
}

// WithinTransaction executes fn against a Store bound to a single database
// transaction. An error from fn rolls back every mutation fn performed.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(repository.Store) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(&txStore{q: tx})
	return err
}

// txStore serves repositories bound to an open transaction.
type txStore struct {
	q pgx.Tx
}

func (t *txStore) Orders() repository.OrderRepository {
	return &orderRepository{q: t.q}
}

func (t *txStore) Inventory() repository.InventoryRepository {
	return &inventoryRepository{q: t.q}
}

func (t *txStore) Events() repository.EventRepository {
	return &eventRepository{q: t.q}
}

// WithinTransaction inside an open transaction reuses it rather than nesting.
func (t *txStore) WithinTransaction(ctx context.Context, fn func(repository.Store) error) error {
	return fn(t)
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            status TEXT NOT NULL,
            total_amount BIGINT NOT NULL,
            currency TEXT NOT NULL,
            customer_email TEXT,
            shipping_name TEXT,
            shipping_line1 TEXT,
            shipping_line2 TEXT,
            shipping_city TEXT,
            shipping_postal_code TEXT,
            shipping_country TEXT,
            payment_session_ref TEXT,
            payment_tx_ref TEXT,
            tracking_number TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id BIGSERIAL PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id),
            product_id TEXT NOT NULL,
            quantity INT NOT NULL,
            unit_price BIGINT NOT NULL,
            customization TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS inventory (
            product_id TEXT PRIMARY KEY,
            quantity INT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS processed_events (
            event_id TEXT PRIMARY KEY,
            outcome TEXT NOT NULL,
            processed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- OrderRepository implementation ---

type orderRepository struct {
	q querier
}

const orderColumns = `id, status, total_amount, currency, customer_email,
       shipping_name, shipping_line1, shipping_line2, shipping_city, shipping_postal_code, shipping_country,
       payment_session_ref, payment_tx_ref, tracking_number, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	const insertOrder = `INSERT INTO orders (id, status, total_amount, currency, customer_email, payment_session_ref)
                         VALUES ($1, $2, $3, $4, $5, $6)
                         RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, insertOrder,
		order.ID, order.Status, order.TotalAmount, order.Currency, order.CustomerEmail, order.PaymentSessionRef,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("order %s: %w", order.ID, domainErrors.ErrAlreadyExists)
		}
		return err
	}

	const insertItem = `INSERT INTO order_items (order_id, product_id, quantity, unit_price, customization)
                        VALUES ($1, $2, $3, $4, $5)`
	for _, item := range order.Items {
		if _, err := r.q.Exec(ctx, insertItem, order.ID, item.ProductID, item.Quantity, item.UnitPrice, item.Customization); err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepository) Get(ctx context.Context, orderID string) (*model.Order, error) {
	return r.get(ctx, orderID, false)
}

func (r *orderRepository) GetForUpdate(ctx context.Context, orderID string) (*model.Order, error) {
	return r.get(ctx, orderID, true)
}

func (r *orderRepository) get(ctx context.Context, orderID string, forUpdate bool) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	order, err := scanOrder(r.q.QueryRow(ctx, query, orderID).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.loadItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, orderID, transactionRef string, email *string, address *model.Address) (*model.Order, error) {
	const query = `UPDATE orders SET
                       status=$2,
                       payment_tx_ref=$3,
                       customer_email=COALESCE($4, customer_email),
                       shipping_name=$5, shipping_line1=$6, shipping_line2=$7,
                       shipping_city=$8, shipping_postal_code=$9, shipping_country=$10,
                       updated_at=NOW()
                   WHERE id=$1`

	var name, line1, line2, city, postal, country *string
	if address != nil {
		name, line1, line2 = &address.Name, &address.Line1, &address.Line2
		city, postal, country = &address.City, &address.PostalCode, &address.Country
	}

	tag, err := r.q.Exec(ctx, query, orderID, model.OrderStatusPaid, transactionRef, email, name, line1, line2, city, postal, country)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return r.get(ctx, orderID, false)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, trackingNumber *string) (*model.Order, error) {
	const query = `UPDATE orders SET
                       status=$2,
                       tracking_number=COALESCE($3, tracking_number),
                       updated_at=NOW()
                   WHERE id=$1`
	tag, err := r.q.Exec(ctx, query, orderID, status, trackingNumber)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return r.get(ctx, orderID, false)
}

func (r *orderRepository) loadItems(ctx context.Context, orderID string) ([]model.LineItem, error) {
	const query = `SELECT product_id, quantity, unit_price, customization
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.LineItem
	for rows.Next() {
		var item model.LineItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice, &item.Customization); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanOrder(scan func(dest ...any) error) (*model.Order, error) {
	var (
		order                                  model.Order
		name, line1, line2, city, postal, land *string
	)
	err := scan(
		&order.ID, &order.Status, &order.TotalAmount, &order.Currency, &order.CustomerEmail,
		&name, &line1, &line2, &city, &postal, &land,
		&order.PaymentSessionRef, &order.PaymentTransactionRef, &order.TrackingNumber,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if line1 != nil {
		order.ShippingAddress = &model.Address{
			Name:       deref(name),
			Line1:      deref(line1),
			Line2:      deref(line2),
			City:       deref(city),
			PostalCode: deref(postal),
			Country:    deref(land),
		}
	}
	return &order, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// --- InventoryRepository implementation ---

type inventoryRepository struct {
	q querier
}

func (r *inventoryRepository) Get(ctx context.Context, productID string) (*model.StockLevel, error) {
	const query = `SELECT product_id, quantity, updated_at FROM inventory WHERE product_id=$1`
	var level model.StockLevel
	err := r.q.QueryRow(ctx, query, productID).Scan(&level.ProductID, &level.Quantity, &level.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

func (r *inventoryRepository) Decrement(ctx context.Context, productID string, quantity int) (int, error) {
	const query = `UPDATE inventory
                   SET quantity = GREATEST(quantity - $2, 0), updated_at = NOW()
                   WHERE product_id = $1
                   RETURNING quantity`
	var remaining int
	err := r.q.QueryRow(ctx, query, productID, quantity).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No counter row means the catalog never tracked this product;
			// treat it as zero stock rather than failing the paid order.
			return 0, nil
		}
		return 0, err
	}
	return remaining, nil
}

func (r *inventoryRepository) SetQuantity(ctx context.Context, productID string, quantity int) (*model.StockLevel, error) {
	if quantity < 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	const query = `INSERT INTO inventory (product_id, quantity, updated_at)
                   VALUES ($1, $2, NOW())
                   ON CONFLICT (product_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
                   RETURNING product_id, quantity, updated_at`
	var level model.StockLevel
	err := r.q.QueryRow(ctx, query, productID, quantity).Scan(&level.ProductID, &level.Quantity, &level.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &level, nil
}

// --- EventRepository implementation ---

type eventRepository struct {
	q querier
}

func (r *eventRepository) Claim(ctx context.Context, eventID string) (bool, error) {
	const query = `INSERT INTO processed_events (event_id, outcome)
                   VALUES ($1, $2)
                   ON CONFLICT (event_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, query, eventID, model.EventOutcomeReceived)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *eventRepository) SetOutcome(ctx context.Context, eventID string, outcome model.EventOutcome) error {
	const query = `UPDATE processed_events SET outcome=$2, processed_at=NOW() WHERE event_id=$1`
	tag, err := r.q.Exec(ctx, query, eventID, outcome)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Get(ctx context.Context, eventID string) (*model.ProcessedEvent, error) {
	const query = `SELECT event_id, outcome, processed_at FROM processed_events WHERE event_id=$1`
	var record model.ProcessedEvent
	err := r.q.QueryRow(ctx, query, eventID).Scan(&record.EventID, &record.Outcome, &record.ProcessedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
