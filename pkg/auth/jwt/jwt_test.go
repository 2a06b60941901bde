package jwt

import (
	"strings"
	"testing"
	"time"
)

func TestToken_Sign(t *testing.T) {
	payload := Claims{ExpirationTime: time.Now().Add(time.Hour).Unix()}
	token := New(AlgHS256, payload)
	tokenString, err := token.Sign("secret")
	if err != nil {
		t.Error(err)
	}

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		t.Error("JWT does not have 3 parts")
	}
}

func TestVerify(t *testing.T) {
	payload := Claims{
		Subject:        "507f1f77bcf86cd799439011",
		ExpirationTime: time.Now().Add(time.Hour).Unix(),
		TokenType:      TokenTypeAccess,
	}
	token := New(AlgHS256, payload)
	tokenString, err := token.Sign("secret")
	if err != nil {
		t.Error(err)
	}

	verifiedToken, err := Verify(tokenString, TokenTypeAccess, "secret", AlgHS256)
	if err != nil {
		t.Error(err)
	}

	if verifiedToken.Payload.Subject != "507f1f77bcf86cd799439011" {
		t.Errorf("wrong subject %s", verifiedToken.Payload.Subject)
	}
}

func TestVerify_Expired(t *testing.T) {
	payload := Claims{ExpirationTime: time.Now().Unix() - 100, TokenType: TokenTypeAccess}
	token := New(AlgHS256, payload)
	tokenString, err := token.Sign("secret")
	if err != nil {
		t.Error(err)
	}

	verifiedToken, err := Verify(tokenString, TokenTypeAccess, "secret", AlgHS256)
	if err == nil || verifiedToken != nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	payload := Claims{ExpirationTime: time.Now().Add(time.Hour).Unix(), TokenType: TokenTypeAccess}
	token := New(AlgHS256, payload)
	tokenString, err := token.Sign("secret")
	if err != nil {
		t.Error(err)
	}

	verifiedToken, err := Verify(tokenString, TokenTypeAccess, "other", AlgHS256)
	if err == nil || verifiedToken != nil {
		t.Error("expected token signed with a different secret to be rejected")
	}
}

func TestVerify_WrongTokenType(t *testing.T) {
	payload := Claims{ExpirationTime: time.Now().Add(time.Hour).Unix(), TokenType: TokenTypeRefresh}
	token := New(AlgHS256, payload)
	tokenString, err := token.Sign("secret")
	if err != nil {
		t.Error(err)
	}

	verifiedToken, err := Verify(tokenString, TokenTypeAccess, "secret", AlgHS256)
	if err == nil || verifiedToken != nil {
		t.Error("expected refresh token to be rejected as access token")
	}
}
