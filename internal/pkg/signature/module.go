package signature

import (
	"go.uber.org/fx"

	"github.com/maisonforma/storefront/internal/config"
)

// Module provides the webhook verifier via fx.
var Module = fx.Provide(newVerifier)

type verifierParams struct {
	fx.In

	Config *config.Config
}

func newVerifier(p verifierParams) *Verifier {
	return NewVerifier(p.Config.WebhookSecret)
}
