package qr

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides the QR issuer configured from application settings.
var Module = fx.Provide(newIssuer)

func newIssuer(cfg *config.Config) (*Issuer, error) {
	return NewIssuer(cfg.BaseURL, Options{Size: cfg.QRSize})
}
