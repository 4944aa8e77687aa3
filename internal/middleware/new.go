package middleware

import (
	"companion-bot/config"
	pkgLog "companion-bot/pkg/log"
)

type Middleware struct {
	l          pkgLog.Logger
	adminToken string
	config     *config.Config
}

func New(l pkgLog.Logger, adminToken string, cfg *config.Config) Middleware {
	return Middleware{
		l:          l,
		adminToken: adminToken,
		config:     cfg,
	}
}
