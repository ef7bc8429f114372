// Package auth fournit l'instantané d'authentification passé à chaque requête de navigation.
// Le rafraîchissement du jeton reste du ressort de la TokenSource.
package auth

import (
	"context"
	"strings"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/ports"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const GoogleTokenURL = "https://oauth2.googleapis.com/token"

// Provider produit des ports.AuthContext à partir d'une oauth2.TokenSource.
// Un Provider sans source est toujours anonyme.
type Provider struct {
	ts     oauth2.TokenSource
	logger zerolog.Logger
}

func NewProvider(ts oauth2.TokenSource, logger zerolog.Logger) *Provider {
	return &Provider{ts: ts, logger: logger.With().Str("component", "auth").Logger()}
}

// Static renvoie une source à jeton fixe, nil si le jeton est vide.
func Static(accessToken string) oauth2.TokenSource {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
}

// RefreshToken renvoie une source qui échange le refresh token contre des jetons d'accès,
// mis en cache jusqu'à expiration. nil si la configuration est incomplète.
func RefreshToken(ctx context.Context, clientID, clientSecret, refreshToken, tokenURL string) oauth2.TokenSource {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	if strings.TrimSpace(tokenURL) == "" {
		tokenURL = GoogleTokenURL
	}
	cfg := &oauth2.Config{
		ClientID:     strings.TrimSpace(clientID),
		ClientSecret: strings.TrimSpace(clientSecret),
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
	}
	return cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: strings.TrimSpace(refreshToken)})
}

// Snapshot lit l'état courant. Une erreur de rafraîchissement donne un contexte anonyme.
func (p *Provider) Snapshot() ports.AuthContext {
	if p == nil || p.ts == nil {
		return ports.AuthContext{}
	}
	tok, err := p.ts.Token()
	if err != nil {
		p.logger.Warn().Err(err).Msg("token refresh failed, browsing anonymously")
		return ports.AuthContext{}
	}
	if !tok.Valid() {
		return ports.AuthContext{}
	}
	return ports.AuthContext{Authenticated: true, AccessToken: tok.AccessToken}
}

func (p *Provider) Configured() bool {
	return p != nil && p.ts != nil
}
