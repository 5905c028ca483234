// Package repository содержит реализацию доступа к данным в PostgreSQL.
package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mmeshcher/credit-system/internal/apperror"
	"github.com/mmeshcher/credit-system/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var (
	// ErrCustomerNotFound возвращается, если клиент не найден.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrCreditNotFound возвращается, если кредит не найден.
	ErrCreditNotFound = errors.New("credit not found")
)

// PostgresRepository предоставляет доступ к хранилищу данных в PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository создаёт новый репозиторий и инициализирует схему БД через миграции.
func NewPostgresRepository(ctx context.Context, dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresRepository{pool: pool}

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

// Close закрывает пул соединений с БД.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// wrapError превращает нарушение ограничения целостности в ошибку категории Conflict.
func wrapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return apperror.Conflict(pgErr.ConstraintName, pgErr.Message, fmt.Errorf("%s: %w", op, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// CreateCustomer сохраняет нового клиента и возвращает его идентификатор.
func (r *PostgresRepository) CreateCustomer(ctx context.Context, c model.Customer) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO customers (first_name, last_name, cpf, email, password, income, zip_code, street)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		c.FirstName, c.LastName, c.CPF, c.Email, c.Password, c.Income, c.Address.ZipCode, c.Address.Street,
	).Scan(&id)
	if err != nil {
		return 0, wrapError("create customer", err)
	}
	return id, nil
}

// UpdateCustomer обновляет изменяемые поля клиента: имя, фамилию, доход и адрес.
func (r *PostgresRepository) UpdateCustomer(ctx context.Context, c model.Customer) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE customers
		 SET first_name = $2, last_name = $3, income = $4, zip_code = $5, street = $6
		 WHERE id = $1`,
		c.ID, c.FirstName, c.LastName, c.Income, c.Address.ZipCode, c.Address.Street,
	)
	if err != nil {
		return wrapError("update customer", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// FindCustomerByID возвращает клиента по идентификатору.
func (r *PostgresRepository) FindCustomerByID(ctx context.Context, id int64) (*model.Customer, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, cpf, email, password, income, zip_code, street
		 FROM customers
		 WHERE id = $1`,
		id,
	)

	var c model.Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.CPF, &c.Email, &c.Password, &c.Income,
		&c.Address.ZipCode, &c.Address.Street)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return &c, nil
}

// CustomerExists проверяет существование клиента.
func (r *PostgresRepository) CustomerExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check customer: %w", err)
	}
	return exists, nil
}

// DeleteCustomer удаляет клиента; его кредиты удаляются каскадно.
func (r *PostgresRepository) DeleteCustomer(ctx context.Context, id int64) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return wrapError("delete customer", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// CreateCredit сохраняет кредит и возвращает его идентификатор.
func (r *PostgresRepository) CreateCredit(ctx context.Context, c model.Credit) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO credits (credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		c.Code, c.Value, c.DayFirstInstallment, c.NumberOfInstallments, string(c.Status), c.CustomerID,
	).Scan(&id)
	if err != nil {
		return 0, wrapError("create credit", err)
	}
	return id, nil
}

// FindCreditByCode возвращает кредит по публичному коду вместе с данными клиента.
func (r *PostgresRepository) FindCreditByCode(ctx context.Context, code uuid.UUID) (*model.Credit, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT cr.id, cr.credit_code, cr.credit_value, cr.day_first_installment, cr.number_of_installments,
		        cr.status, cr.customer_id,
		        cu.first_name, cu.last_name, cu.cpf, cu.email, cu.income, cu.zip_code, cu.street
		 FROM credits cr
		 JOIN customers cu ON cu.id = cr.customer_id
		 WHERE cr.credit_code = $1`,
		code,
	)

	var (
		c      model.Credit
		cu     model.Customer
		status string
	)
	err := row.Scan(&c.ID, &c.Code, &c.Value, &c.DayFirstInstallment, &c.NumberOfInstallments,
		&status, &c.CustomerID,
		&cu.FirstName, &cu.LastName, &cu.CPF, &cu.Email, &cu.Income, &cu.Address.ZipCode, &cu.Address.Street)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCreditNotFound
		}
		return nil, fmt.Errorf("get credit: %w", err)
	}

	c.Status = model.Status(status)
	cu.ID = c.CustomerID
	c.Customer = &cu

	return &c, nil
}

// FindCreditsByCustomer возвращает кредиты клиента в порядке создания.
func (r *PostgresRepository) FindCreditsByCustomer(ctx context.Context, customerID int64) ([]model.Credit, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id
		 FROM credits
		 WHERE customer_id = $1
		 ORDER BY id`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("select credits: %w", err)
	}
	defer rows.Close()

	var credits []model.Credit
	for rows.Next() {
		var (
			c      model.Credit
			status string
		)
		if err := rows.Scan(&c.ID, &c.Code, &c.Value, &c.DayFirstInstallment, &c.NumberOfInstallments,
			&status, &c.CustomerID); err != nil {
			return nil, fmt.Errorf("scan credit: %w", err)
		}
		c.Status = model.Status(status)
		credits = append(credits, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return credits, nil
}
