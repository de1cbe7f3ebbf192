package storage

import (
	"database/sql"
	"errors"

	"cpv_go/models"
	"cpv_go/pkg/offers"
)

const offerColumns = `id, blogger_id, channel_id, status, scheduled_at, window_from, window_to,
	price, estimated_income, posting_mode, decision_deadline, ad_text, delivery_url, created_at`

// CreateOffer сохраняет предложение и возвращает запись с присвоенным ID.
// ID растут монотонно (SERIAL), удаление не предусмотрено.
func (db *DB) CreateOffer(o models.Offer) (*models.Offer, error) {
	query := `
		INSERT INTO offers (blogger_id, channel_id, status, scheduled_at, window_from, window_to,
			price, estimated_income, posting_mode, decision_deadline, ad_text, delivery_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := db.Conn.QueryRow(query,
		o.BloggerID, o.ChannelID, o.Status, o.ScheduledAt, o.WindowFrom, o.WindowTo,
		o.Price, o.EstimatedIncome, o.PostingMode, o.DecisionDeadline, o.Text, o.DeliveryURL, o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOffer возвращает предложение по ID.
func (db *DB) GetOffer(id int) (*models.Offer, error) {
	o, err := scanOffer(db.Conn.QueryRow(`SELECT `+offerColumns+` FROM offers WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, offers.ErrNotFound
	}
	return o, err
}

// ListOffers возвращает все предложения, включая терминальные.
func (db *DB) ListOffers() ([]models.Offer, error) {
	return db.listOffers(`SELECT ` + offerColumns + ` FROM offers ORDER BY id`)
}

// ListOffersByBlogger возвращает предложения одного блогера.
func (db *DB) ListOffersByBlogger(bloggerID int) ([]models.Offer, error) {
	return db.listOffers(`SELECT `+offerColumns+` FROM offers WHERE blogger_id = $1 ORDER BY id`, bloggerID)
}

// UpdateOffer перезаписывает изменяемые поля предложения.
func (db *DB) UpdateOffer(o *models.Offer) error {
	query := `
		UPDATE offers
		SET status = $1, scheduled_at = $2, decision_deadline = $3, delivery_url = $4
		WHERE id = $5
	`
	_, err := db.Conn.Exec(query, o.Status, o.ScheduledAt, o.DecisionDeadline, o.DeliveryURL, o.ID)
	return err
}

func (db *DB) listOffers(query string, args ...any) ([]models.Offer, error) {
	rows, err := db.Conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func scanOffer(row rowScanner) (*models.Offer, error) {
	var o models.Offer
	var deadline sql.NullTime
	err := row.Scan(&o.ID, &o.BloggerID, &o.ChannelID, &o.Status, &o.ScheduledAt, &o.WindowFrom, &o.WindowTo,
		&o.Price, &o.EstimatedIncome, &o.PostingMode, &deadline, &o.Text, &o.DeliveryURL, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if deadline.Valid {
		t := deadline.Time
		o.DecisionDeadline = &t
	}
	return &o, nil
}
