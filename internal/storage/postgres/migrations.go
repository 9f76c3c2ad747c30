package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema matches the SQLite backend column for column. Tariffs must be
// created before users due to the foreign key.
const schema = `
CREATE TABLE IF NOT EXISTS tariffs (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    monthly_price BIGINT NOT NULL,
    max_debtors INT NOT NULL DEFAULT 0,
    sms_per_month INT NOT NULL DEFAULT 0,
    export_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS tariff_features (
    tariff_id BIGINT NOT NULL REFERENCES tariffs(id) ON DELETE CASCADE,
    position INT NOT NULL,
    feature TEXT NOT NULL,
    PRIMARY KEY (tariff_id, position)
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    phone TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL,
    status TEXT NOT NULL,
    tariff_id BIGINT REFERENCES tariffs(id) ON DELETE SET NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS debts (
    id BIGSERIAL PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    phone TEXT NOT NULL,
    debt_date TEXT NOT NULL,
    total_debt BIGINT NOT NULL,
    paid BOOLEAN NOT NULL DEFAULT FALSE,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS debt_items (
    debt_id BIGINT NOT NULL REFERENCES debts(id) ON DELETE CASCADE,
    position INT NOT NULL,
    name TEXT NOT NULL,
    qty INT NOT NULL,
    price BIGINT NOT NULL,
    PRIMARY KEY (debt_id, position)
);

CREATE TABLE IF NOT EXISTS payments (
    id BIGSERIAL PRIMARY KEY,
    debt_id BIGINT NOT NULL,
    owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    phone TEXT NOT NULL,
    debt_date TEXT NOT NULL,
    paid_date TEXT NOT NULL,
    amount BIGINT NOT NULL,
    method TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_debts_owner_id ON debts(owner_id);
CREATE INDEX IF NOT EXISTS idx_debt_items_debt_id ON debt_items(debt_id);
CREATE INDEX IF NOT EXISTS idx_payments_owner_id ON payments(owner_id);
CREATE INDEX IF NOT EXISTS idx_users_phone ON users(phone);
CREATE INDEX IF NOT EXISTS idx_users_tariff_id ON users(tariff_id);
`

// runMigrations executes the schema setup.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
