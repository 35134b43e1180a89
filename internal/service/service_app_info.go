package service

import (
	"context"

	"github.com/MKhiriev/go-ride-keeper/internal/config"
	"github.com/MKhiriev/go-ride-keeper/internal/logger"
	"github.com/MKhiriev/go-ride-keeper/models"
)

type appInfoService struct {
	appVersion string
	build      models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService reports cfg.Version when set and the linker-provided
// build version otherwise.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, logger *logger.Logger) AppInfoService {
	version := cfg.Version
	if version == "" {
		version = build.BuildVersion()
	}

	return &appInfoService{
		appVersion: version,
		build:      build,
		logger:     logger,
	}
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.build
}
