package storage

import (
	"database/sql"
	"encoding/json"
	"errors"

	"cpv_go/models"
	"cpv_go/pkg/offers"
)

// Слоты расписания хранятся одной JSONB-колонкой: движок всегда читает
// и пишет расписание целиком, отдельные слоты в запросах не нужны.

// CreateChannel сохраняет канал. Расписание и лимит нормализуются
// до записи, чтобы в базе не оказалось пустого расписания.
func (db *DB) CreateChannel(ch models.Channel) (*models.Channel, error) {
	ch.ScheduleSlots = models.NormalizeScheduleSlots(ch.ScheduleSlots)
	ch.WeeklyPostLimit = models.NormalizeWeeklyLimit(ch.WeeklyPostLimit)
	if !ch.PostingMode.Valid() {
		ch.PostingMode = models.ModePrecheck
	}
	slots, err := json.Marshal(ch.ScheduleSlots)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO channels (blogger_id, title, tg_channel_id, posting_mode, weekly_post_limit, schedule_slots, pause_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = db.Conn.QueryRow(query, ch.BloggerID, ch.Title, ch.TGChannelID, ch.PostingMode, ch.WeeklyPostLimit, slots, ch.PauseUntil).Scan(&ch.ID)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// GetChannel возвращает канал по ID.
func (db *DB) GetChannel(id int) (*models.Channel, error) {
	query := `
		SELECT id, blogger_id, title, tg_channel_id, posting_mode, weekly_post_limit, schedule_slots, pause_until
		FROM channels
		WHERE id = $1
	`
	ch, err := scanChannel(db.Conn.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, offers.ErrNotFound
	}
	return ch, err
}

// ListChannels возвращает все каналы.
func (db *DB) ListChannels() ([]models.Channel, error) {
	query := `
		SELECT id, blogger_id, title, tg_channel_id, posting_mode, weekly_post_limit, schedule_slots, pause_until
		FROM channels
		ORDER BY id
	`
	rows, err := db.Conn.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Channel
	for rows.Next() {
		ch, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ch)
	}
	return out, rows.Err()
}

// UpdateChannel перезаписывает изменяемые поля канала.
func (db *DB) UpdateChannel(ch *models.Channel) error {
	slots, err := json.Marshal(ch.ScheduleSlots)
	if err != nil {
		return err
	}
	query := `
		UPDATE channels
		SET title = $1, tg_channel_id = $2, posting_mode = $3, weekly_post_limit = $4, schedule_slots = $5, pause_until = $6
		WHERE id = $7
	`
	_, err = db.Conn.Exec(query, ch.Title, ch.TGChannelID, ch.PostingMode, ch.WeeklyPostLimit, slots, ch.PauseUntil, ch.ID)
	return err
}

// rowScanner покрывает и *sql.Row, и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanChannel(row rowScanner) (*models.Channel, error) {
	var ch models.Channel
	var slots []byte
	var pause sql.NullTime
	if err := row.Scan(&ch.ID, &ch.BloggerID, &ch.Title, &ch.TGChannelID, &ch.PostingMode, &ch.WeeklyPostLimit, &slots, &pause); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(slots, &ch.ScheduleSlots); err != nil {
		return nil, err
	}
	if pause.Valid {
		t := pause.Time
		ch.PauseUntil = &t
	}
	return &ch, nil
}
