package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dsemenov/authkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username and password and attempts to create
// a new account. On success the issued session token is kept in memory
// so the user is logged in immediately.
//
// The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	session, err := a.api.Register(ctx, userName, password)
	if err != nil {
		printlnFn("Registration unsuccessful:", err.Error())
		return err
	}

	a.token = session.Token
	a.userName = session.Username
	printlnFn("Success! Logged in as", session.Username)
	return nil
}

// Login prompts for credentials and tries to authenticate. On success the
// issued session token replaces any previous one.
//
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	session, err := a.api.Login(ctx, userName, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			printlnFn("Login unsuccessful: invalid credentials")
		} else {
			printlnFn("Login unsuccessful:", err.Error())
		}
		return err
	}

	a.token = session.Token
	a.userName = session.Username
	printlnFn("Login successful")
	return nil
}

// Whoami asks the server who the current token belongs to and prints the
// result. An expired or missing session is reported, not treated as an error.
func (a *App) Whoami(ctx context.Context) error {
	session, err := a.api.CheckAuth(ctx, a.token)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	if session == nil {
		a.token = ""
		a.userName = ""
		printlnFn("Not logged in")
		return nil
	}

	printlnFn(fmt.Sprintf("Logged in as %s (id %d)", session.Username, session.UserID))
	return nil
}

// Logout discards the in-memory session token.
func (a *App) Logout(ctx context.Context) error {
	a.token = ""
	a.userName = ""
	printlnFn("Logged out")
	return nil
}
