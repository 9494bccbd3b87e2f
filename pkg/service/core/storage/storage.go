package storage

import (
	"github.com/navikt/nada-tablemetadata/pkg/database"
	"github.com/navikt/nada-tablemetadata/pkg/service"
	"github.com/navikt/nada-tablemetadata/pkg/service/core/storage/postgres"
)

type Stores struct {
	NotificationStorage service.NotificationStorage
}

func NewStores(db *database.Repo) *Stores {
	return &Stores{
		NotificationStorage: postgres.NewNotificationStorage(db),
	}
}
