// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hrdesk/internal/platform/sec"
)

func signToken(t *testing.T, key *rsa.PrivateKey, claims sec.AuthClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

/*
TestTokenVerifier_VerifyToken covers valid, expired, foreign-issuer and
wrong-key tokens.
*/
func TestTokenVerifier_VerifyToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	verifier := sec.NewTokenVerifierFromKey(&key.PublicKey, "https://auth.example.com")
	now := time.Now()

	valid := sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "https://auth.example.com",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Role: "manager",
	}

	claims, err := verifier.VerifyToken(signToken(t, key, valid))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "manager", claims.Role)

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Hour))
	_, err = verifier.VerifyToken(signToken(t, key, expired))
	assert.Error(t, err)

	foreign := valid
	foreign.Issuer = "https://evil.example.com"
	_, err = verifier.VerifyToken(signToken(t, key, foreign))
	assert.Error(t, err)

	_, err = verifier.VerifyToken(signToken(t, other, valid))
	assert.Error(t, err)
}

/*
TestUserRole_AtLeast verifies the admin > manager > staff ordering.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleManager))
	assert.True(t, sec.RoleManager.AtLeast(sec.RoleStaff))
	assert.True(t, sec.RoleStaff.AtLeast(sec.RoleStaff))
	assert.False(t, sec.RoleStaff.AtLeast(sec.RoleManager))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleStaff))
}

/*
TestSecretHash verifies secrets round-trip through bcrypt.
*/
func TestSecretHash(t *testing.T) {
	secret, err := sec.NewSecret()
	require.NoError(t, err)
	assert.Len(t, secret, 32)

	hash, err := sec.HashSecret(secret)
	require.NoError(t, err)
	assert.True(t, sec.CheckSecretHash(secret, hash))
	assert.False(t, sec.CheckSecretHash(secret+"x", hash))
}
