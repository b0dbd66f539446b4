package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	parser := NewParser("secret")
	userID := uuid.New()

	token, err := issuer.Issue(userID, time.Now())
	require.NoError(t, err)

	claims, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	parser := NewParser("other-secret")

	token, err := issuer.Issue(uuid.New(), time.Now())
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute)
	parser := NewParser("secret")

	token, err := issuer.Issue(uuid.New(), time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractToken(t *testing.T) {
	assert.Equal(t, "abc", ExtractToken("Bearer abc", "cookie-token"))
	assert.Equal(t, "cookie-token", ExtractToken("", "cookie-token"))
	assert.Equal(t, "cookie-token", ExtractToken("Basic xyz", "cookie-token"))
	assert.Equal(t, "", ExtractToken("", ""))
}
