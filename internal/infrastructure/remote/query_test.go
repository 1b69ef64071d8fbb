package remote

import (
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuery_Encode(t *testing.T) {
	q := NewListQuery().Equal("memberId", "u1").OrderAsc("eventDate").Limit(1)

	values, err := url.ParseQuery(q.Encode())
	require.NoError(t, err)

	assert.Equal(t, []string{
		`equal("memberId","u1")`,
		`orderAsc("eventDate")`,
		`limit(1)`,
	}, values["query"])
}

func TestListQuery_EncodeEmpty(t *testing.T) {
	assert.Empty(t, NewListQuery().Encode())
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": "s1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpired(t *testing.T) {
	assert.True(t, tokenExpired(signedToken(t, time.Now().Add(-time.Minute))))
	assert.False(t, tokenExpired(signedToken(t, time.Now().Add(time.Hour))))

	// Unparseable or claimless tokens defer to the backend's verdict.
	assert.False(t, tokenExpired("not-a-jwt"))
}
