package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id                    UUID        PRIMARY KEY,
  name                  TEXT        NOT NULL,
  email                 TEXT        NOT NULL UNIQUE,
  hashed_password       TEXT        NOT NULL,
  is_admin              BOOLEAN     NOT NULL DEFAULT FALSE,
  public_key            TEXT        NOT NULL DEFAULT '',
  encrypted_private_key TEXT        NOT NULL DEFAULT '',
  key_salt              TEXT        NOT NULL DEFAULT '',
  created_at            TIMESTAMPTZ NOT NULL,
  last_active           TIMESTAMPTZ NOT NULL
);`,
	},
	{
		Name: "create_table_secrets",
		SQL: `CREATE TABLE IF NOT EXISTS secrets (
  user_id             UUID        PRIMARY KEY REFERENCES users (id) ON DELETE CASCADE,
  aws_access_key      TEXT        NOT NULL DEFAULT '',
  aws_secret_key      TEXT        NOT NULL DEFAULT '',
  aws_created_at      TIMESTAMPTZ,
  azure_client_id     TEXT        NOT NULL DEFAULT '',
  azure_client_secret TEXT        NOT NULL DEFAULT '',
  azure_created_at    TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_range_templates",
		SQL: `CREATE TABLE IF NOT EXISTS range_templates (
  id         UUID        PRIMARY KEY,
  owner_id   UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  name       TEXT        NOT NULL,
  provider   TEXT        NOT NULL,
  vnc        BOOLEAN     NOT NULL DEFAULT FALSE,
  vpn        BOOLEAN     NOT NULL DEFAULT FALSE,
  spec       JSONB       NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_vpc_templates",
		SQL: `CREATE TABLE IF NOT EXISTS vpc_templates (
  id         UUID        PRIMARY KEY,
  owner_id   UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  range_id   UUID        REFERENCES range_templates (id) ON DELETE CASCADE,
  name       TEXT        NOT NULL,
  cidr       TEXT        NOT NULL,
  spec       JSONB       NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_subnet_templates",
		SQL: `CREATE TABLE IF NOT EXISTS subnet_templates (
  id         UUID        PRIMARY KEY,
  owner_id   UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  vpc_id     UUID        REFERENCES vpc_templates (id) ON DELETE CASCADE,
  name       TEXT        NOT NULL,
  cidr       TEXT        NOT NULL,
  spec       JSONB       NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_host_templates",
		SQL: `CREATE TABLE IF NOT EXISTS host_templates (
  id         UUID        PRIMARY KEY,
  owner_id   UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  subnet_id  UUID        REFERENCES subnet_templates (id) ON DELETE CASCADE,
  hostname   TEXT        NOT NULL,
  spec       JSONB       NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_ranges",
		SQL: `CREATE TABLE IF NOT EXISTS ranges (
  id          UUID        PRIMARY KEY,
  owner_id    UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  template_id UUID        NOT NULL,
  name        TEXT        NOT NULL,
  provider    TEXT        NOT NULL,
  region      TEXT        NOT NULL,
  state       TEXT        NOT NULL,
  state_key   TEXT        NOT NULL,
  plan_key    TEXT        NOT NULL DEFAULT '',
  readme_key  TEXT        NOT NULL DEFAULT '',
  deployed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_range_templates_owner",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_range_templates_owner ON range_templates (owner_id);`,
	},
	{
		Name: "create_index_vpc_templates_owner",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_vpc_templates_owner ON vpc_templates (owner_id, range_id);`,
	},
	{
		Name: "create_index_subnet_templates_owner",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_subnet_templates_owner ON subnet_templates (owner_id, vpc_id);`,
	},
	{
		Name: "create_index_host_templates_owner",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_host_templates_owner ON host_templates (owner_id, subnet_id);`,
	},
	{
		Name: "create_index_ranges_owner",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_ranges_owner ON ranges (owner_id);`,
	},
}

// EnsureMigrated checks if the 'users' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.users') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
