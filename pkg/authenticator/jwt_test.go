package authenticator_test

import (
	"testing"
	"time"

	"github.com/questboard/backend/config"
	"github.com/questboard/backend/internal/model"
	"github.com/questboard/backend/pkg/authenticator"

	"github.com/stretchr/testify/require"
)

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine[model.AccessToken](config.TokenConfigs{
		Secret:     "secret",
		Expiration: time.Minute,
	})

	token, err := engine.Generate("user1", model.AccessToken{ID: "user1"})
	require.NoError(t, err)

	info, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user1", info.ID)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine[model.AccessToken](config.TokenConfigs{
		Secret:     "secret",
		Expiration: -time.Minute,
	})

	token, err := engine.Generate("user1", model.AccessToken{ID: "user1"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	engine := authenticator.NewTokenEngine[model.AccessToken](config.TokenConfigs{
		Secret:     "secret",
		Expiration: time.Minute,
	})

	token, err := engine.Generate("user1", model.AccessToken{ID: "user1"})
	require.NoError(t, err)

	other := authenticator.NewTokenEngine[model.AccessToken](config.TokenConfigs{
		Secret:     "another-secret",
		Expiration: time.Minute,
	})

	_, err = other.Verify(token)
	require.Error(t, err)
}
