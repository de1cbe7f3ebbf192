package storage

import (
	"database/sql"
	"errors"

	"cpv_go/models"
	"cpv_go/pkg/offers"
)

// CreateBlogger сохраняет блогера и возвращает запись с присвоенным ID.
func (db *DB) CreateBlogger(b models.Blogger) (*models.Blogger, error) {
	query := `
		INSERT INTO bloggers (tg_chat_id, username)
		VALUES ($1, $2)
		RETURNING id
	`
	err := db.Conn.QueryRow(query, b.TGChatID, b.Username).Scan(&b.ID)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBlogger возвращает блогера по ID.
func (db *DB) GetBlogger(id int) (*models.Blogger, error) {
	var b models.Blogger
	query := `
		SELECT id, tg_chat_id, username
		FROM bloggers
		WHERE id = $1
	`
	err := db.Conn.QueryRow(query, id).Scan(&b.ID, &b.TGChatID, &b.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, offers.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
