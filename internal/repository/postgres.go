// Package repository содержит реализации хранилища покупателей и товаров.
package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mmeshcher/retail-store/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var defaultRetryDelays = []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

// PostgresRepository предоставляет доступ к хранилищу данных в PostgreSQL.
type PostgresRepository struct {
	pool        *pgxpool.Pool
	retryDelays []time.Duration
}

// NewPostgresRepository создаёт новый репозиторий и инициализирует схему БД через миграции.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresRepository{pool: pool, retryDelays: defaultRetryDelays}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// withRetry повторяет fn при временных ошибках БД: конфликтах сериализации, дедлоках и обрывах соединения.
func (r *PostgresRepository) withRetry(ctx context.Context, fn func() error) error {
	var err error

	for i := 0; i <= len(r.retryDelays); i++ {
		err = fn()
		if err == nil {
			return nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		if !isRetryable(err) || i == len(r.retryDelays) {
			return err
		}

		timer := time.NewTimer(r.retryDelays[i])
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return err
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
	}
	return isConnectionError(err)
}

func isConnectionError(err error) bool {
	// Упрощенная проверка на ошибки соединения
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "connection reset by peer")
}

// Close закрывает пул соединений с БД.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// CreateCustomer сохраняет нового покупателя и возвращает его идентификатор.
func (r *PostgresRepository) CreateCustomer(ctx context.Context, c model.Customer) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO customers (balance, credit_allowed, vip) VALUES ($1, $2, $3) RETURNING id`,
		c.Balance, c.CreditAllowed, c.VIP,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create customer: %w", err)
	}
	return id, nil
}

// GetCustomer возвращает покупателя по идентификатору.
func (r *PostgresRepository) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	return scanCustomer(r.pool.QueryRow(ctx,
		`SELECT id, balance, credit_allowed, vip FROM customers WHERE id = $1`,
		id,
	))
}

// UpdateCustomer блокирует строку покупателя, передаёт его в fn и сохраняет новый баланс.
// Если fn вернула ошибку, транзакция откатывается.
func (r *PostgresRepository) UpdateCustomer(ctx context.Context, id int64, fn func(*model.Customer) error) error {
	return r.withRetry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		c, err := lockCustomer(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := fn(c); err != nil {
			return err
		}

		if err := saveBalance(ctx, tx, c); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}

// CreateProduct сохраняет новый товар и возвращает его идентификатор.
func (r *PostgresRepository) CreateProduct(ctx context.Context, p model.Product) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (name, price, quantity) VALUES ($1, $2, $3) RETURNING id`,
		p.Name, p.Price, p.Quantity,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	return id, nil
}

// GetProduct возвращает товар по идентификатору.
func (r *PostgresRepository) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx,
		`SELECT id, name, price, quantity FROM products WHERE id = $1`,
		id,
	))
}

// UpdatePurchase блокирует строки товара и покупателя, передаёт их в fn и сохраняет остаток и баланс.
// Товар блокируется первым, чтобы параллельные покупки одного товара не приводили к дедлоку.
func (r *PostgresRepository) UpdatePurchase(ctx context.Context, productID, customerID int64, fn func(*model.Product, *model.Customer) error) error {
	return r.withRetry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		p, err := scanProduct(tx.QueryRow(ctx,
			`SELECT id, name, price, quantity FROM products WHERE id = $1 FOR UPDATE`,
			productID,
		))
		if err != nil {
			return err
		}

		c, err := lockCustomer(ctx, tx, customerID)
		if err != nil {
			return err
		}

		if err := fn(p, c); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE products SET quantity = $2 WHERE id = $1`,
			p.ID, p.Quantity,
		); err != nil {
			return fmt.Errorf("update product: %w", err)
		}

		if err := saveBalance(ctx, tx, c); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}

func lockCustomer(ctx context.Context, tx pgx.Tx, id int64) (*model.Customer, error) {
	return scanCustomer(tx.QueryRow(ctx,
		`SELECT id, balance, credit_allowed, vip FROM customers WHERE id = $1 FOR UPDATE`,
		id,
	))
}

func saveBalance(ctx context.Context, tx pgx.Tx, c *model.Customer) error {
	_, err := tx.Exec(ctx, `UPDATE customers SET balance = $2 WHERE id = $1`, c.ID, c.Balance)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	if err := row.Scan(&c.ID, &c.Balance, &c.CreditAllowed, &c.VIP); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
