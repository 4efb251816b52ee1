package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema - идемпотентный DDL. Применяется на старте сервиса;
// инструменты миграций вне зоны ответственности этого модуля.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	first_name    TEXT NOT NULL DEFAULT '',
	last_name     TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL DEFAULT 'agent',
	is_active     BOOLEAN NOT NULL DEFAULT true,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sellers (
	id                BIGSERIAL PRIMARY KEY,
	first_name        TEXT NOT NULL DEFAULT '',
	last_name         TEXT NOT NULL DEFAULT '',
	phone             TEXT NOT NULL DEFAULT '',
	email             TEXT NOT NULL DEFAULT '',
	status            TEXT NOT NULL DEFAULT 'active',
	assigned_agent_id BIGINT REFERENCES users(id),
	notes             TEXT NOT NULL DEFAULT '',
	archived_at       TIMESTAMPTZ,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS buyers (
	id                 BIGSERIAL PRIMARY KEY,
	first_name         TEXT NOT NULL DEFAULT '',
	last_name          TEXT NOT NULL DEFAULT '',
	phone              TEXT NOT NULL DEFAULT '',
	email              TEXT NOT NULL DEFAULT '',
	budget_min         NUMERIC,
	budget_max         NUMERIC,
	preferred_location TEXT NOT NULL DEFAULT '',
	property_type      TEXT NOT NULL DEFAULT '',
	rooms_min          INT,
	rooms_max          INT,
	status             TEXT NOT NULL DEFAULT 'active',
	source             TEXT NOT NULL DEFAULT '',
	assigned_agent_id  BIGINT REFERENCES users(id),
	notes              TEXT NOT NULL DEFAULT '',
	archived_at        TIMESTAMPTZ,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS properties (
	id                     BIGSERIAL PRIMARY KEY,
	title                  TEXT NOT NULL,
	description            TEXT NOT NULL DEFAULT '',
	property_type          TEXT NOT NULL,
	category               TEXT NOT NULL,
	address                TEXT NOT NULL DEFAULT '',
	city                   TEXT NOT NULL DEFAULT '',
	district               TEXT NOT NULL DEFAULT '',
	area                   INT NOT NULL,
	rooms                  INT NOT NULL,
	floor                  INT,
	total_floors           INT,
	year_built             INT,
	exposure               TEXT NOT NULL DEFAULT '',
	heating                TEXT NOT NULL DEFAULT '',
	price_eur              NUMERIC,
	monthly_rent_eur       NUMERIC,
	management_fee_percent NUMERIC,
	status                 TEXT NOT NULL DEFAULT 'available',
	viewings               INT NOT NULL DEFAULT 0,
	last_viewing           TIMESTAMPTZ,
	seller_id              BIGINT REFERENCES sellers(id),
	assigned_agent_id      BIGINT REFERENCES users(id),
	archived_at            TIMESTAMPTZ,
	created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at             TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tenants (
	id             BIGSERIAL PRIMARY KEY,
	first_name     TEXT NOT NULL DEFAULT '',
	last_name      TEXT NOT NULL DEFAULT '',
	phone          TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL DEFAULT '',
	property_id    BIGINT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
	contract_start DATE NOT NULL,
	contract_end   DATE NOT NULL,
	deposit        NUMERIC,
	monthly_rent   NUMERIC,
	status         TEXT NOT NULL DEFAULT 'active',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tasks (
	id                BIGSERIAL PRIMARY KEY,
	title             TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	due_date          DATE NOT NULL,
	due_time          TEXT NOT NULL DEFAULT '',
	priority          TEXT NOT NULL DEFAULT 'medium',
	status            TEXT NOT NULL DEFAULT 'pending',
	task_type         TEXT NOT NULL DEFAULT 'follow_up',
	buyer_id          BIGINT REFERENCES buyers(id) ON DELETE SET NULL,
	seller_id         BIGINT REFERENCES sellers(id) ON DELETE SET NULL,
	property_id       BIGINT REFERENCES properties(id) ON DELETE CASCADE,
	assigned_agent_id BIGINT REFERENCES users(id),
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_properties_listing ON properties (property_type, category, status) WHERE archived_at IS NULL;
CREATE INDEX IF NOT EXISTS idx_properties_district ON properties (district);
CREATE INDEX IF NOT EXISTS idx_tenants_property ON tenants (property_id);
CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks (status, due_date);
`

// Migrate применяет схему. Безопасно вызывать на каждом старте.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
