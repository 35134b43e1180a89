package service

import (
	"github.com/MKhiriev/go-ride-keeper/internal/config"
	"github.com/MKhiriev/go-ride-keeper/internal/crypto"
	"github.com/MKhiriev/go-ride-keeper/internal/logger"
	"github.com/MKhiriev/go-ride-keeper/internal/store"
	"github.com/MKhiriev/go-ride-keeper/internal/trip"
	"github.com/MKhiriev/go-ride-keeper/internal/utils"
	"github.com/MKhiriev/go-ride-keeper/models"
)

type Services struct {
	TripService    TripService
	CardService    CardService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cipher crypto.FieldCipher, cfg config.App, build models.AppBuildInfo, logger *logger.Logger) *Services {
	ids := utils.NewUUIDGenerator()
	holder := trip.NewHolder(trip.WithIDGenerator(ids), trip.WithLogger(logger))

	return &Services{
		TripService:    NewTripService(holder, storages, cipher, logger),
		CardService:    NewCardService(storages, cipher, ids, logger),
		AppInfoService: NewAppInfoService(cfg, build, logger),
	}
}
