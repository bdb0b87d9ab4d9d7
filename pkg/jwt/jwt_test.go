package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

const (
	secret = "secreto-de-test"
	userID = "00000000-0000-0000-0000-000000000001"
	issuer = "almacen-api-test"
)

func TestGenerateAndParse_RoundTripConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "purchasing", issuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	gotUser, gotRole, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, "purchasing", gotRole)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "admin", issuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err, "la firma con otro secreto debe rechazarse")
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "admin", issuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err, "un token vencido debe rechazarse")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", userID, "admin", issuer, 60)
	assert.Error(t, err)
}
