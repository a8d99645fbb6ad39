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
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  username      TEXT        NOT NULL UNIQUE,
  email         TEXT        NOT NULL UNIQUE,
  full_name     TEXT        NOT NULL DEFAULT '',
  avatar_url    TEXT        NOT NULL DEFAULT '',
  password_hash TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_instances",
		SQL: `CREATE TABLE IF NOT EXISTS instances (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title           TEXT        NOT NULL,
  description     TEXT        NOT NULL DEFAULT '',
  thumb_public_id TEXT        NOT NULL DEFAULT '',
  thumb_url       TEXT        NOT NULL DEFAULT '',
  visibility      TEXT        NOT NULL CHECK (visibility IN ('public', 'private')),
  password_hash   TEXT,
  owner_id        UUID        NOT NULL REFERENCES users (id),
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK ((visibility = 'private') = (password_hash IS NOT NULL))
);`,
	},
	{
		Name: "create_table_groups",
		SQL: `CREATE TABLE IF NOT EXISTS groups (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name        TEXT        NOT NULL,
  owner_id    UUID        NOT NULL REFERENCES users (id),
  instance_id UUID        NOT NULL REFERENCES instances (id),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (instance_id, name)
);`,
	},
	{
		Name: "create_table_resources",
		SQL: `CREATE TABLE IF NOT EXISTS resources (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  kind           TEXT        NOT NULL CHECK (kind IN ('image', 'video', 'document')),
  title          TEXT        NOT NULL,
  owner_id       UUID        NOT NULL REFERENCES users (id),
  group_id       UUID        NOT NULL REFERENCES groups (id),
  blob_public_id TEXT        NOT NULL UNIQUE,
  blob_url       TEXT        NOT NULL,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_comments",
		SQL: `CREATE TABLE IF NOT EXISTS comments (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  content     TEXT        NOT NULL,
  instance_id UUID        NOT NULL REFERENCES instances (id),
  author_id   UUID        NOT NULL REFERENCES users (id),
  edited      BOOLEAN     NOT NULL DEFAULT false,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_instances_owner",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_instances_owner ON instances (owner_id);`,
	},
	{
		Name: "create_index_groups_instance",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_groups_instance ON groups (instance_id, created_at);`,
	},
	{
		Name: "create_index_resources_group",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_resources_group ON resources (group_id, created_at);`,
	},
	{
		Name: "create_index_resources_kind",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_resources_kind ON resources (kind);`,
	},
	{
		Name: "create_index_comments_instance",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_comments_instance ON comments (instance_id, created_at);`,
	},
}

// EnsureMigrated checks if the 'instances' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.instances') IS NOT NULL"
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
