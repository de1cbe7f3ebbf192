package storage

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// DB - хранилище сущностей движка в Postgres. Запросы пишутся сырым SQL,
// по файлу на сущность: blogger.go, channel.go, offer.go.
//
// Комментарии в коде на русском языке по требованию пользователя

type DB struct {
	Conn *sql.DB
}

func NewDB(conn *sql.DB) *DB {
	return &DB{Conn: conn}
}

// EnsureSchema создаёт таблицы, если их ещё нет. Предложения никогда
// не удаляются, поэтому таблица offers служит и историей размещений.
func (db *DB) EnsureSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS bloggers (
			id SERIAL PRIMARY KEY,
			tg_chat_id BIGINT NOT NULL DEFAULT 0,
			username TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS channels (
			id SERIAL PRIMARY KEY,
			blogger_id INTEGER NOT NULL REFERENCES bloggers(id),
			title TEXT NOT NULL DEFAULT '',
			tg_channel_id BIGINT NOT NULL DEFAULT 0,
			posting_mode TEXT NOT NULL DEFAULT 'precheck',
			weekly_post_limit INTEGER NOT NULL DEFAULT 7,
			schedule_slots JSONB NOT NULL DEFAULT '[]',
			pause_until TIMESTAMPTZ
		);
		CREATE TABLE IF NOT EXISTS offers (
			id SERIAL PRIMARY KEY,
			blogger_id INTEGER NOT NULL REFERENCES bloggers(id),
			channel_id INTEGER NOT NULL REFERENCES channels(id),
			status TEXT NOT NULL,
			scheduled_at TIMESTAMPTZ NOT NULL,
			window_from TIMESTAMPTZ NOT NULL,
			window_to TIMESTAMPTZ NOT NULL,
			price INTEGER NOT NULL,
			estimated_income INTEGER NOT NULL,
			posting_mode TEXT NOT NULL,
			decision_deadline TIMESTAMPTZ,
			ad_text TEXT NOT NULL DEFAULT '',
			delivery_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	_, err := db.Conn.Exec(schema)
	return err
}
