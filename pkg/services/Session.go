package services

import (
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

const (
	DefaultUserID = "default"
	GDataVersion  = "2"
)

type SessionConfig struct {
	UserID      string
	TokenSource oauth2.TokenSource
}

/*
Session carries the identity every request is made under: the user whose
feeds are addressed and the token used to authorize the calls.
*/
type Session struct {
	userID      string
	tokenSource oauth2.TokenSource
}

func NewSession(config SessionConfig) Session {
	userID := config.UserID

	if userID == "" {
		userID = DefaultUserID
	}

	return Session{
		userID:      userID,
		tokenSource: config.TokenSource,
	}
}

// NewTokenSession is a shortcut for a session authorized by a fixed access token.
func NewTokenSession(userID, accessToken string) Session {
	return NewSession(SessionConfig{
		UserID:      userID,
		TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}),
	})
}

func (s Session) UserID() string {
	return s.userID
}

func (s Session) AuthHeader() (http.Header, error) {
	var (
		err   error
		token *oauth2.Token
	)

	header := http.Header{}
	header.Set("GData-Version", GDataVersion)

	if s.tokenSource == nil {
		return header, nil
	}

	if token, err = s.tokenSource.Token(); err != nil {
		return nil, fmt.Errorf("error retrieving access token: %w", err)
	}

	header.Set("Authorization", token.Type()+" "+token.AccessToken)
	return header, nil
}
