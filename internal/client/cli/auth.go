package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tokenkeeper/internal/client/client"
	"github.com/dmitrijs2005/tokenkeeper/internal/client/models"
	"github.com/dmitrijs2005/tokenkeeper/internal/client/services"
	"github.com/dmitrijs2005/tokenkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for a username and password and exchanges them for tokens.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.manager.CreateTokens(ctx, models.Credentials{Username: userName, Password: password})
	return a.report(res, err)
}

// Refresh refreshes tokens when notBefore (optional) lies past the cached
// expiry or the expiry is unknown.
func (a *App) Refresh(ctx context.Context, notBefore string) error {
	res, err := a.manager.RefreshTokens(ctx, notBefore)
	return a.report(res, err)
}

// Logout wipes the local cache and revokes the tokens at the authority.
func (a *App) Logout(ctx context.Context) error {
	res, err := a.manager.InvalidateTokens(ctx)
	return a.report(res, err)
}

// Status prints the cached auth record without contacting the authority.
func (a *App) Status(ctx context.Context) error {
	s, err := a.cache.Read(ctx)
	if err != nil {
		printlnFn("Cannot read auth state:", err)
		return err
	}
	printlnFn(describe(s))
	return nil
}

func (a *App) isLoggedIn() bool {
	s, err := a.cache.Read(context.Background())
	if err != nil {
		return false
	}
	return s.Status() == models.StatusAuthenticated
}

func (a *App) report(res *services.Result, err error) error {
	if err != nil {
		switch {
		case errors.Is(err, client.ErrUnauthorized):
			printlnFn("Not authorized, please log in again.")
		case errors.Is(err, client.ErrUnavailable):
			printlnFn("Token authority unavailable, try again later.")
		case errors.Is(err, common.ErrValidation):
			printlnFn("Invalid input:", err)
		default:
			printlnFn("Error:", err)
		}
		return err
	}
	printlnFn(fmt.Sprintf("%s: %s", res.Op, describe(res.Auth)))
	return nil
}

// describe renders s without the token values.
func describe(s models.AuthState) string {
	exp := "unknown"
	if s.ExpiresAt != nil {
		exp = s.ExpiresAt.UTC().Format("2006-01-02 15:04:05 MST")
	}
	return fmt.Sprintf("status=%s expires=%s", s.Status(), exp)
}
