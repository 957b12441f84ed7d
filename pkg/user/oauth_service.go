package user

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
)

const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"

	oauthStateScope = "oauth_state"
	oauthStateTTL   = 10 * time.Minute
)

type (
	// OAuthProvider drives one provider's authorization code flow.
	OAuthProvider interface {
		Name() string
		AuthCodeURL(state string) string
		FetchProfile(ctx context.Context, code string) (*domain.OAuthProfile, error)
	}

	OAuthService interface {
		// Begin returns the provider redirect URL and the nonce the caller must hand back on completion.
		Begin(provider string) (string, string, error)
		Complete(ctx context.Context, provider, code, state, nonce string) (*domain.AuthResponse, error)
	}

	oauthService struct {
		providers   map[string]OAuthProvider
		userService UserService
		jwtService  jwt.JWTService
	}

	oauthProvider struct {
		name       string
		config     *oauth2.Config
		profileURL string
		decode     func(body []byte) (*domain.OAuthProfile, error)
	}
)

func NewOAuthService(userService UserService, jwtService jwt.JWTService, providers ...OAuthProvider) OAuthService {
	byName := make(map[string]OAuthProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &oauthService{
		providers:   byName,
		userService: userService,
		jwtService:  jwtService,
	}
}

func (s *oauthService) Begin(provider string) (string, string, error) {
	p, ok := s.providers[provider]
	if !ok {
		return "", "", domain.ErrOAuthProvider
	}
	nonce := uuid.NewString()
	state, err := s.jwtService.GenerateScopedToken(oauthStateScope, map[string]any{
		"nonce":    nonce,
		"provider": provider,
	}, oauthStateTTL)
	if err != nil {
		return "", "", err
	}
	return p.AuthCodeURL(state), nonce, nil
}

func (s *oauthService) Complete(ctx context.Context, provider, code, state, nonce string) (*domain.AuthResponse, error) {
	p, ok := s.providers[provider]
	if !ok {
		return nil, domain.ErrOAuthProvider
	}

	claims, err := s.jwtService.ValidateScopedToken(oauthStateScope, state)
	if err != nil {
		return nil, domain.ErrOAuthState
	}
	if nonce == "" || claims["nonce"] != nonce || claims["provider"] != provider {
		return nil, domain.ErrOAuthState
	}

	profile, err := p.FetchProfile(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.userService.LoginWithOAuth(ctx, *profile)
}

func NewGoogleProvider(clientID, clientSecret, callbackURL string) OAuthProvider {
	return &oauthProvider{
		name: ProviderGoogle,
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		profileURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		decode: func(body []byte) (*domain.OAuthProfile, error) {
			var p struct {
				ID      string `json:"id"`
				Email   string `json:"email"`
				Name    string `json:"name"`
				Picture string `json:"picture"`
			}
			if err := json.Unmarshal(body, &p); err != nil {
				return nil, err
			}
			return &domain.OAuthProfile{Provider: ProviderGoogle, ProviderID: p.ID, Email: p.Email, Name: p.Name, Avatar: p.Picture}, nil
		},
	}
}

func NewFacebookProvider(appID, appSecret, callbackURL string) OAuthProvider {
	return &oauthProvider{
		name: ProviderFacebook,
		config: &oauth2.Config{
			ClientID:     appID,
			ClientSecret: appSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     facebook.Endpoint,
		},
		profileURL: "https://graph.facebook.com/me?fields=id,name,email,picture.type(large)",
		decode: func(body []byte) (*domain.OAuthProfile, error) {
			var p struct {
				ID      string `json:"id"`
				Email   string `json:"email"`
				Name    string `json:"name"`
				Picture struct {
					Data struct {
						URL string `json:"url"`
					} `json:"data"`
				} `json:"picture"`
			}
			if err := json.Unmarshal(body, &p); err != nil {
				return nil, err
			}
			return &domain.OAuthProfile{Provider: ProviderFacebook, ProviderID: p.ID, Email: p.Email, Name: p.Name, Avatar: p.Picture.Data.URL}, nil
		},
	}
}

func (p *oauthProvider) Name() string {
	return p.name
}

func (p *oauthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (p *oauthProvider) FetchProfile(ctx context.Context, code string) (*domain.OAuthProfile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOAuthProfile, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.profileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOAuthProfile, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrOAuthProfile, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	profile, err := p.decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOAuthProfile, err)
	}
	if profile.ProviderID == "" {
		return nil, domain.ErrOAuthProfile
	}
	return profile, nil
}
