package offers

import "cpv_go/models"

// Store - хранилище сущностей движка. Движок не знает, лежат ли данные
// в Postgres или в памяти: ему нужны только операции get/list/put.
// Реализации находятся в pkg/storage.
//
// Комментарии в коде на русском языке по требованию пользователя

type Store interface {
	GetBlogger(id int) (*models.Blogger, error)

	GetChannel(id int) (*models.Channel, error)
	ListChannels() ([]models.Channel, error)
	UpdateChannel(ch *models.Channel) error

	GetOffer(id int) (*models.Offer, error)
	ListOffers() ([]models.Offer, error)
	ListOffersByBlogger(bloggerID int) ([]models.Offer, error)
	CreateOffer(o models.Offer) (*models.Offer, error)
	UpdateOffer(o *models.Offer) error
}
