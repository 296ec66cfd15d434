/*
Package sqlite provides the SQLite-backed ledger store.

PURPOSE:
  Implements the pos storage interfaces (CatalogStore, StaffStore,
  InvoiceStore, ClosureStore) on SQLite. A single-outlet register keeps
  everything in one file database.

KEY TABLES:
  products:               Sellable catalog (admin CRUD)
  employees:              Staff with unique employee numbers
  invoices:               Append-only sales, daily_number per date
  invoice_items:          Line items owned by invoices (cascade delete)
  daily_closures:         One immutable snapshot per closed date
  daily_invoice_counters: Cosmetic next-day hint written on close;
                          never read back

APPEND-ONLY ENFORCEMENT:
  No UPDATE or DELETE statements touch invoices, invoice_items, or
  daily_closures. Invoices enter through CreateInvoice only.

DAILY NUMBER ASSIGNMENT:
  CreateInvoice counts the date's invoices and inserts header plus items
  inside one transaction, under the store's write mutex. That closes the
  count-then-insert race: concurrent sales on the same date serialize,
  so numbers for a date are exactly {1..k}. A UNIQUE(date, daily_number)
  index is the hard backstop.

MONEY:
  Monetary values are stored as decimal strings and folded with
  shopspring/decimal in the pos package, never as floats.

WAL MODE:
  Opened with WAL and foreign keys on: readers don't block, a single
  writer at a time, cascade delete of items with their invoice.

USAGE:
  store, err := sqlite.New("./pos.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - pos/store.go: Interface definitions and atomicity contract
  - pos/ledger.go: Sale recording on top of this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ampos/pos-engine/pos"
)

// Store implements pos.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, &pos.StorageError{Op: "open database", Err: err}
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, &pos.StorageError{Op: "migrate database", Err: err}
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		price TEXT NOT NULL,
		category TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_products_category
		ON products(category, sort_order, name);

	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		employee_number TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('admin', 'cashier')),
		created_at TEXT NOT NULL
	);

	-- Append-only sales ledger. employee_id is a soft reference: deleting
	-- an employee leaves their invoices in place.
	CREATE TABLE IF NOT EXISTS invoices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		created_at TEXT NOT NULL,
		employee_id INTEGER NOT NULL,
		total_amount TEXT NOT NULL,
		payment_method TEXT NOT NULL CHECK (payment_method IN ('cash', 'card', 'mixed')),
		cash_amount TEXT NOT NULL,
		card_amount TEXT NOT NULL,
		payments_json TEXT NOT NULL,
		daily_number INTEGER NOT NULL
	);

	-- CRITICAL: daily numbers are unique per calendar date.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_date_daily_number
		ON invoices(date, daily_number);
	CREATE INDEX IF NOT EXISTS idx_invoices_date
		ON invoices(date);
	CREATE INDEX IF NOT EXISTS idx_invoices_employee
		ON invoices(employee_id);

	-- Items are owned by their invoice. product_id is a soft reference.
	CREATE TABLE IF NOT EXISTS invoice_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		invoice_id INTEGER NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		price TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice
		ON invoice_items(invoice_id);
	CREATE INDEX IF NOT EXISTS idx_invoice_items_product
		ON invoice_items(product_id);

	-- At most one closure per date.
	CREATE TABLE IF NOT EXISTS daily_closures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL UNIQUE,
		total_sales TEXT NOT NULL,
		total_tax TEXT NOT NULL,
		net_sales TEXT NOT NULL,
		total_invoices INTEGER NOT NULL,
		closed_by INTEGER NOT NULL,
		closed_at TEXT NOT NULL
	);

	-- Hint written when a day closes. Nothing reads it: daily numbers
	-- are derived by counting invoices.
	CREATE TABLE IF NOT EXISTS daily_invoice_counters (
		date TEXT PRIMARY KEY,
		current_number INTEGER NOT NULL DEFAULT 0
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CATALOG STORE (pos.CatalogStore interface)
// =============================================================================

// ListProducts returns the catalog ordered for the cashier grid.
func (s *Store) ListProducts(ctx context.Context) ([]pos.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price, category, image_url, sort_order, created_at
		FROM products
		ORDER BY category, sort_order, name
	`)
	if err != nil {
		return nil, &pos.StorageError{Op: "list products", Err: err}
	}
	defer rows.Close()

	var products []pos.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, &pos.StorageError{Op: "scan product", Err: err}
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct returns a product, or nil if it doesn't exist.
func (s *Store) GetProduct(ctx context.Context, id int64) (*pos.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, price, category, image_url, sort_order, created_at
		FROM products WHERE id = ?
	`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &pos.StorageError{Op: "get product", Err: err}
	}
	return &p, nil
}

// CreateProduct inserts a product and fills p.ID.
func (s *Store) CreateProduct(ctx context.Context, p *pos.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO products (name, price, category, image_url, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.Name, p.Price.String(), p.Category, p.ImageURL, p.SortOrder,
		p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return &pos.StorageError{Op: "create product", Err: err}
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

// UpdateProduct updates a product in place.
func (s *Store) UpdateProduct(ctx context.Context, p *pos.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE products SET name = ?, price = ?, category = ?, image_url = ?, sort_order = ?
		WHERE id = ?
	`, p.Name, p.Price.String(), p.Category, p.ImageURL, p.SortOrder, p.ID)
	if err != nil {
		return &pos.StorageError{Op: "update product", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pos.ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product. Historical invoice items keep their
// captured product_id and price; reports bucket them under a nil name.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return &pos.StorageError{Op: "delete product", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pos.ErrNotFound
	}
	return nil
}

// =============================================================================
// STAFF STORE (pos.StaffStore interface)
// =============================================================================

// ListEmployees returns all employees ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]pos.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, employee_number, password, role, created_at
		FROM employees
		ORDER BY name
	`)
	if err != nil {
		return nil, &pos.StorageError{Op: "list employees", Err: err}
	}
	defer rows.Close()

	var employees []pos.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, &pos.StorageError{Op: "scan employee", Err: err}
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// GetEmployee returns an employee, or nil if missing.
func (s *Store) GetEmployee(ctx context.Context, id int64) (*pos.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, employee_number, password, role, created_at
		FROM employees WHERE id = ?
	`, id)

	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &pos.StorageError{Op: "get employee", Err: err}
	}
	return &e, nil
}

// GetEmployeeByNumber looks an employee up by their login number.
func (s *Store) GetEmployeeByNumber(ctx context.Context, number string) (*pos.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, employee_number, password, role, created_at
		FROM employees WHERE employee_number = ?
	`, number)

	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &pos.StorageError{Op: "get employee by number", Err: err}
	}
	return &e, nil
}

// CreateEmployee inserts an employee and fills e.ID.
func (s *Store) CreateEmployee(ctx context.Context, e *pos.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (name, employee_number, password, role, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.Name, e.EmployeeNumber, e.PasswordHash, string(e.Role),
		e.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if isUniqueConstraintError(err) {
			return pos.ErrDuplicateEmployeeNumber
		}
		return &pos.StorageError{Op: "create employee", Err: err}
	}
	e.ID, _ = res.LastInsertId()
	return nil
}

// UpdateEmployee updates an employee. An empty PasswordHash keeps the
// stored credential.
func (s *Store) UpdateEmployee(ctx context.Context, e *pos.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		res sql.Result
		err error
	)
	if e.PasswordHash == "" {
		res, err = s.db.ExecContext(ctx, `
			UPDATE employees SET name = ?, employee_number = ?, role = ?
			WHERE id = ?
		`, e.Name, e.EmployeeNumber, string(e.Role), e.ID)
	} else {
		res, err = s.db.ExecContext(ctx, `
			UPDATE employees SET name = ?, employee_number = ?, password = ?, role = ?
			WHERE id = ?
		`, e.Name, e.EmployeeNumber, e.PasswordHash, string(e.Role), e.ID)
	}
	if err != nil {
		if isUniqueConstraintError(err) {
			return pos.ErrDuplicateEmployeeNumber
		}
		return &pos.StorageError{Op: "update employee", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pos.ErrNotFound
	}
	return nil
}

// DeleteEmployee removes an employee. Their historical invoices keep the
// orphaned employee_id; reports bucket them under a nil name.
func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return &pos.StorageError{Op: "delete employee", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pos.ErrNotFound
	}
	return nil
}

// =============================================================================
// INVOICE STORE (pos.InvoiceStore interface)
// =============================================================================

// CreateInvoice persists a sale atomically: the date's invoice count and
// the header+items insert happen inside one transaction, serialized by
// the store's write mutex, so concurrent sales on the same date cannot
// observe the same count. Assigns inv.DailyNumber and fills inv.ID.
func (s *Store) CreateInvoice(ctx context.Context, inv *pos.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	paymentsJSON, err := json.Marshal(inv.Tenders)
	if err != nil {
		return &pos.StorageError{Op: "encode tenders", Err: err}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &pos.StorageError{Op: "begin invoice transaction", Err: err}
	}
	defer tx.Rollback()

	var count int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM invoices WHERE date = ?`, string(inv.Date),
	).Scan(&count); err != nil {
		return &pos.StorageError{Op: "count invoices", Err: err}
	}
	inv.DailyNumber = count + 1

	res, err := tx.ExecContext(ctx, `
		INSERT INTO invoices
			(date, created_at, employee_id, total_amount, payment_method,
			 cash_amount, card_amount, payments_json, daily_number)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, string(inv.Date),
		inv.CreatedAt.Format(time.RFC3339),
		inv.EmployeeID,
		inv.TotalAmount.String(),
		string(inv.PaymentMethod),
		inv.CashAmount.String(),
		inv.CardAmount.String(),
		string(paymentsJSON),
		inv.DailyNumber,
	)
	if err != nil {
		return &pos.StorageError{Op: "insert invoice", Err: err}
	}
	invoiceID, err := res.LastInsertId()
	if err != nil {
		return &pos.StorageError{Op: "invoice id", Err: err}
	}

	for i := range inv.Items {
		item := &inv.Items[i]
		itemRes, err := tx.ExecContext(ctx, `
			INSERT INTO invoice_items (invoice_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)
		`, invoiceID, item.ProductID, item.Quantity, item.Price.String())
		if err != nil {
			return &pos.StorageError{Op: "insert invoice item", Err: err}
		}
		item.ID, _ = itemRes.LastInsertId()
		item.InvoiceID = invoiceID
	}

	if err := tx.Commit(); err != nil {
		return &pos.StorageError{Op: "commit invoice", Err: err}
	}
	inv.ID = invoiceID
	return nil
}

// InvoicesByDate returns the date's invoices ordered by daily number,
// with the seller's name joined (empty for deleted employees).
func (s *Store) InvoicesByDate(ctx context.Context, date pos.Date) ([]pos.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.date, i.created_at, i.employee_id, COALESCE(e.name, ''),
		       i.total_amount, i.payment_method, i.cash_amount, i.card_amount,
		       i.payments_json, i.daily_number
		FROM invoices i
		LEFT JOIN employees e ON i.employee_id = e.id
		WHERE i.date = ?
		ORDER BY i.daily_number ASC
	`, string(date))
	if err != nil {
		return nil, &pos.StorageError{Op: "invoices by date", Err: err}
	}
	defer rows.Close()

	var invoices []pos.Invoice
	for rows.Next() {
		var (
			inv                  pos.Invoice
			dateStr, createdAt   string
			total, cash, card    string
			method, paymentsJSON string
		)
		if err := rows.Scan(&inv.ID, &dateStr, &createdAt, &inv.EmployeeID,
			&inv.EmployeeName, &total, &method, &cash, &card,
			&paymentsJSON, &inv.DailyNumber); err != nil {
			return nil, &pos.StorageError{Op: "scan invoice", Err: err}
		}
		inv.Date = pos.Date(dateStr)
		inv.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		inv.TotalAmount = pos.MustDecimal(total)
		inv.PaymentMethod = pos.PaymentMethod(method)
		inv.CashAmount = pos.MustDecimal(cash)
		inv.CardAmount = pos.MustDecimal(card)
		_ = json.Unmarshal([]byte(paymentsJSON), &inv.Tenders)
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// ItemsByDate returns every line item sold on the date with product
// names joined (empty for deleted products).
func (s *Store) ItemsByDate(ctx context.Context, date pos.Date) ([]pos.InvoiceItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT ii.id, ii.invoice_id, ii.product_id, COALESCE(p.name, ''),
		       ii.quantity, ii.price
		FROM invoice_items ii
		JOIN invoices i ON ii.invoice_id = i.id
		LEFT JOIN products p ON ii.product_id = p.id
		WHERE i.date = ?
		ORDER BY ii.id ASC
	`, string(date))
	if err != nil {
		return nil, &pos.StorageError{Op: "items by date", Err: err}
	}
	defer rows.Close()
	return scanItems(rows)
}

// ItemsByInvoice returns one invoice's line items with product names.
func (s *Store) ItemsByInvoice(ctx context.Context, invoiceID int64) ([]pos.InvoiceItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT ii.id, ii.invoice_id, ii.product_id, COALESCE(p.name, ''),
		       ii.quantity, ii.price
		FROM invoice_items ii
		LEFT JOIN products p ON ii.product_id = p.id
		WHERE ii.invoice_id = ?
		ORDER BY ii.id ASC
	`, invoiceID)
	if err != nil {
		return nil, &pos.StorageError{Op: "items by invoice", Err: err}
	}
	defer rows.Close()
	return scanItems(rows)
}

// CountInvoices returns the number of invoices recorded for the date.
func (s *Store) CountInvoices(ctx context.Context, date pos.Date) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM invoices WHERE date = ?`, string(date),
	).Scan(&count)
	if err != nil {
		return 0, &pos.StorageError{Op: "count invoices", Err: err}
	}
	return count, nil
}

// =============================================================================
// CLOSURE STORE (pos.ClosureStore interface)
// =============================================================================

// GetClosure returns the date's closure, or nil if the day is open.
func (s *Store) GetClosure(ctx context.Context, date pos.Date) (*pos.DailyClosure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, total_sales, total_tax, net_sales, total_invoices,
		       closed_by, closed_at
		FROM daily_closures WHERE date = ?
	`, string(date))

	var (
		c                    pos.DailyClosure
		dateStr, closedAt    string
		totalSales, totalTax string
		netSales             string
	)
	err := row.Scan(&c.ID, &dateStr, &totalSales, &totalTax, &netSales,
		&c.TotalInvoices, &c.ClosedBy, &closedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &pos.StorageError{Op: "get closure", Err: err}
	}
	c.Date = pos.Date(dateStr)
	c.TotalSales = pos.MustDecimal(totalSales)
	c.TotalTax = pos.MustDecimal(totalTax)
	c.NetSales = pos.MustDecimal(netSales)
	c.ClosedAt, _ = time.Parse(time.RFC3339, closedAt)
	return &c, nil
}

// CreateClosure inserts the closure. The UNIQUE(date) constraint is the
// authoritative duplicate check: a second close for the same date fails
// with pos.ErrAlreadyClosed even under concurrent requests.
func (s *Store) CreateClosure(ctx context.Context, c *pos.DailyClosure) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ClosedAt.IsZero() {
		c.ClosedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_closures
			(date, total_sales, total_tax, net_sales, total_invoices, closed_by, closed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, string(c.Date),
		c.TotalSales.String(),
		c.TotalTax.String(),
		c.NetSales.String(),
		c.TotalInvoices,
		c.ClosedBy,
		c.ClosedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return pos.ErrAlreadyClosed
		}
		return &pos.StorageError{Op: "create closure", Err: err}
	}
	c.ID, _ = res.LastInsertId()
	return nil
}

// SeedCounter writes the zeroed next-day counter hint.
func (s *Store) SeedCounter(ctx context.Context, date pos.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO daily_invoice_counters (date, current_number)
		VALUES (?, 0)
	`, string(date))
	if err != nil {
		return &pos.StorageError{Op: "seed counter", Err: err}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (pos.Product, error) {
	var (
		p         pos.Product
		price     string
		createdAt string
	)
	err := row.Scan(&p.ID, &p.Name, &price, &p.Category, &p.ImageURL,
		&p.SortOrder, &createdAt)
	if err != nil {
		return pos.Product{}, err
	}
	p.Price = pos.MustDecimal(price)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return p, nil
}

func scanEmployee(row rowScanner) (pos.Employee, error) {
	var (
		e         pos.Employee
		role      string
		createdAt string
	)
	err := row.Scan(&e.ID, &e.Name, &e.EmployeeNumber, &e.PasswordHash,
		&role, &createdAt)
	if err != nil {
		return pos.Employee{}, err
	}
	e.Role = pos.Role(role)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

func scanItems(rows *sql.Rows) ([]pos.InvoiceItem, error) {
	var items []pos.InvoiceItem
	for rows.Next() {
		var (
			item  pos.InvoiceItem
			price string
		)
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.ProductID,
			&item.ProductName, &item.Quantity, &price); err != nil {
			return nil, &pos.StorageError{Op: "scan invoice item", Err: err}
		}
		item.Price = pos.MustDecimal(price)
		items = append(items, item)
	}
	return items, rows.Err()
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
