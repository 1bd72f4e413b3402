package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/niveshai/niveshai-backend/internal/analytics"
	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio and investment tables.
// Queries are written with ? placeholders and rebound for PostgreSQL.
// Derived fields are not stored; they are recomputed when a portfolio is loaded.
type PortfolioRepository struct {
	db      *sql.DB
	tx      *sql.Tx
	dialect string
}

// NewPortfolioRepository creates a new PortfolioRepository.
// dialect is the goose/database dialect: "sqlite3" or "postgres".
func NewPortfolioRepository(db *sql.DB, dialect string) *PortfolioRepository {
	return &PortfolioRepository{db: db, dialect: dialect}
}

// WithTx returns a new PortfolioRepository scoped to the provided transaction.
func (r *PortfolioRepository) WithTx(tx *sql.Tx) *PortfolioRepository {
	return &PortfolioRepository{
		db:      r.db,
		tx:      tx,
		dialect: r.dialect,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *PortfolioRepository) getQuerier() interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// rebind converts ? placeholders to $n for PostgreSQL.
func (r *PortfolioRepository) rebind(query string) string {
	if r.dialect != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// inTx runs fn inside a transaction unless the repository is already scoped to one.
func (r *PortfolioRepository) inTx(ctx context.Context, fn func(repo *PortfolioRepository) error) error {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(r.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Create inserts the portfolio row and its investment rows.
func (r *PortfolioRepository) Create(ctx context.Context, p model.Portfolio) error {
	target, err := json.Marshal(p.TargetAllocation)
	if err != nil {
		return fmt.Errorf("failed to encode target allocation: %w", err)
	}

	return r.inTx(ctx, func(repo *PortfolioRepository) error {
		query := `
			INSERT INTO portfolio (id, owner_id, name, description, risk_profile, target_allocation, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := repo.getQuerier().ExecContext(ctx, repo.rebind(query),
			p.ID,
			p.OwnerID,
			p.Name,
			p.Description,
			p.RiskProfile,
			string(target),
			formatTime(p.CreatedAt),
			formatTime(p.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert portfolio: %w", err)
		}

		return repo.insertInvestments(ctx, p.ID, p.Investments)
	})
}

// Get retrieves a single portfolio with its investments.
// Returns apperrors.ErrPortfolioNotFound if no row matches.
func (r *PortfolioRepository) Get(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	query := `
		SELECT id, owner_id, name, description, risk_profile, target_allocation, created_at, updated_at
		FROM portfolio
		WHERE id = ?
	`
	p, err := scanPortfolio(r.getQuerier().QueryRowContext(ctx, r.rebind(query), portfolioID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Portfolio{}, fmt.Errorf("%w: %s", apperrors.ErrPortfolioNotFound, portfolioID)
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	investments, err := r.getInvestments(ctx, []string{p.ID})
	if err != nil {
		return model.Portfolio{}, err
	}
	p.Investments = investments[p.ID]
	if p.Investments == nil {
		p.Investments = []model.Investment{}
	}

	analytics.RecomputeAll(&p)
	return p, nil
}

// List retrieves every portfolio, oldest first.
func (r *PortfolioRepository) List(ctx context.Context) ([]model.Portfolio, error) {
	query := `
		SELECT id, owner_id, name, description, risk_profile, target_allocation, created_at, updated_at
		FROM portfolio
		ORDER BY created_at, id
	`
	return r.queryPortfolios(ctx, query)
}

// ListByOwner retrieves the portfolios of one owner, oldest first.
// Returns an empty slice if the owner has no portfolios.
func (r *PortfolioRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Portfolio, error) {
	query := `
		SELECT id, owner_id, name, description, risk_profile, target_allocation, created_at, updated_at
		FROM portfolio
		WHERE owner_id = ?
		ORDER BY created_at, id
	`
	return r.queryPortfolios(ctx, query, ownerID)
}

func (r *PortfolioRepository) queryPortfolios(ctx context.Context, query string, args ...any) ([]model.Portfolio, error) {
	rows, err := r.getQuerier().QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}
		portfolios = append(portfolios, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	if len(portfolios) == 0 {
		return portfolios, nil
	}

	ids := make([]string, len(portfolios))
	for i, p := range portfolios {
		ids[i] = p.ID
	}
	investments, err := r.getInvestments(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range portfolios {
		portfolios[i].Investments = investments[portfolios[i].ID]
		if portfolios[i].Investments == nil {
			portfolios[i].Investments = []model.Investment{}
		}
		analytics.RecomputeAll(&portfolios[i])
	}
	return portfolios, nil
}

// Save updates the portfolio row and replaces its investment rows.
// Returns apperrors.ErrPortfolioNotFound if the portfolio does not exist.
func (r *PortfolioRepository) Save(ctx context.Context, p model.Portfolio) error {
	target, err := json.Marshal(p.TargetAllocation)
	if err != nil {
		return fmt.Errorf("failed to encode target allocation: %w", err)
	}

	return r.inTx(ctx, func(repo *PortfolioRepository) error {
		query := `
			UPDATE portfolio
			SET name = ?, description = ?, risk_profile = ?, target_allocation = ?, updated_at = ?
			WHERE id = ?
		`
		result, err := repo.getQuerier().ExecContext(ctx, repo.rebind(query),
			p.Name,
			p.Description,
			p.RiskProfile,
			string(target),
			formatTime(p.UpdatedAt),
			p.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update portfolio: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("%w: %s", apperrors.ErrPortfolioNotFound, p.ID)
		}

		if _, err := repo.getQuerier().ExecContext(ctx, repo.rebind(`DELETE FROM investment WHERE portfolio_id = ?`), p.ID); err != nil {
			return fmt.Errorf("failed to clear investments: %w", err)
		}

		return repo.insertInvestments(ctx, p.ID, p.Investments)
	})
}

// Delete removes a portfolio and its investments.
// Investments are removed explicitly so the cascade does not depend on the
// SQLite foreign_keys pragma being set on every pooled connection.
func (r *PortfolioRepository) Delete(ctx context.Context, portfolioID string) error {
	return r.inTx(ctx, func(repo *PortfolioRepository) error {
		if _, err := repo.getQuerier().ExecContext(ctx, repo.rebind(`DELETE FROM investment WHERE portfolio_id = ?`), portfolioID); err != nil {
			return fmt.Errorf("failed to delete investments: %w", err)
		}

		result, err := repo.getQuerier().ExecContext(ctx, repo.rebind(`DELETE FROM portfolio WHERE id = ?`), portfolioID)
		if err != nil {
			return fmt.Errorf("failed to delete portfolio: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("%w: %s", apperrors.ErrPortfolioNotFound, portfolioID)
		}
		return nil
	})
}

func (r *PortfolioRepository) insertInvestments(ctx context.Context, portfolioID string, investments []model.Investment) error {
	query := r.rebind(`
		INSERT INTO investment (
			id, portfolio_id, kind, symbol, name, sector, market_cap, isin,
			quantity, average_cost, current_price, purchase_date, position, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	for i, inv := range investments {
		var purchaseDate any
		if inv.PurchaseDate != nil {
			purchaseDate = inv.PurchaseDate.UTC().Format("2006-01-02")
		}

		_, err := r.getQuerier().ExecContext(ctx, query,
			inv.ID,
			portfolioID,
			inv.Kind,
			inv.Symbol,
			inv.Name,
			inv.Sector,
			inv.MarketCap,
			inv.ISIN,
			inv.Quantity,
			inv.AverageCost,
			inv.CurrentPrice,
			purchaseDate,
			i,
			formatTime(inv.CreatedAt),
			formatTime(inv.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert investment %s: %w", inv.ID, err)
		}
	}
	return nil
}

// getInvestments loads the investments of the given portfolios, grouped by portfolio ID,
// each group in insertion order.
func (r *PortfolioRepository) getInvestments(ctx context.Context, portfolioIDs []string) (map[string][]model.Investment, error) {
	placeholders := make([]string, len(portfolioIDs))
	args := make([]any, len(portfolioIDs))
	for i, id := range portfolioIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT id, portfolio_id, kind, symbol, name, sector, market_cap, isin,
			quantity, average_cost, current_price, purchase_date, created_at, updated_at
		FROM investment
		WHERE portfolio_id IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY portfolio_id, position
	`

	rows, err := r.getQuerier().QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]model.Investment)
	for rows.Next() {
		var inv model.Investment
		var portfolioID, createdStr, updatedStr string
		var purchaseStr sql.NullString

		err := rows.Scan(
			&inv.ID,
			&portfolioID,
			&inv.Kind,
			&inv.Symbol,
			&inv.Name,
			&inv.Sector,
			&inv.MarketCap,
			&inv.ISIN,
			&inv.Quantity,
			&inv.AverageCost,
			&inv.CurrentPrice,
			&purchaseStr,
			&createdStr,
			&updatedStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment table results: %w", err)
		}

		if inv.CreatedAt, err = ParseTime(createdStr); err != nil {
			return nil, fmt.Errorf("failed to parse investment created_at: %w", err)
		}
		if inv.UpdatedAt, err = ParseTime(updatedStr); err != nil {
			return nil, fmt.Errorf("failed to parse investment updated_at: %w", err)
		}
		if purchaseStr.Valid && purchaseStr.String != "" {
			d, err := ParseTime(purchaseStr.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse purchase_date: %w", err)
			}
			inv.PurchaseDate = &d
		}

		result[portfolioID] = append(result[portfolioID], inv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPortfolio(row rowScanner) (model.Portfolio, error) {
	var p model.Portfolio
	var description, target sql.NullString
	var createdStr, updatedStr string

	if err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&description,
		&p.RiskProfile,
		&target,
		&createdStr,
		&updatedStr,
	); err != nil {
		return model.Portfolio{}, err
	}

	p.Description = description.String
	if target.Valid && target.String != "" && target.String != "null" {
		if err := json.Unmarshal([]byte(target.String), &p.TargetAllocation); err != nil {
			return model.Portfolio{}, fmt.Errorf("failed to decode target allocation: %w", err)
		}
	}

	var err error
	if p.CreatedAt, err = ParseTime(createdStr); err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if p.UpdatedAt, err = ParseTime(updatedStr); err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return p, nil
}

// timestampLayout is fixed-width so that stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
