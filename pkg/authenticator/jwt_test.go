package authenticator_test

import (
	"testing"
	"time"

	"github.com/docthru/backend/config"
	"github.com/docthru/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

type claims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine[claims]("secret", config.TokenConfigs{Expiration: time.Minute})
	token, err := engine.Generate("1", claims{ID: "1", Role: "admin"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims{ID: "1", Role: "admin"}, obj)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine[claims]("secret", config.TokenConfigs{Expiration: -time.Minute})
	token, err := engine.Generate("1", claims{ID: "1"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	engine := authenticator.NewTokenEngine[claims]("secret", config.TokenConfigs{Expiration: time.Minute})
	token, err := engine.Generate("1", claims{ID: "1"})
	require.NoError(t, err)

	other := authenticator.NewTokenEngine[claims]("other", config.TokenConfigs{Expiration: time.Minute})
	_, err = other.Verify(token)
	require.Error(t, err)
}
