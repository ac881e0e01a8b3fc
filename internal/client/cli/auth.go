package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/linkkeeper/internal/client/api"
)

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	u, err := a.client.SignUp(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Registration unsuccessful: credentials taken")
		} else {
			fmt.Fprintf(a.out, "Registration unsuccessful: %v\n", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Registered %s, you can now login\n", u.Email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if err := a.client.SignIn(ctx, email, string(password)); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Login unsuccessful: invalid credentials")
		} else {
			fmt.Fprintf(a.out, "Login unsuccessful: %v\n", err)
		}
		return err
	}

	a.userName = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.client.SetToken("")
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	u, err := a.client.Me(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Not logged in")
		} else {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "%s", u.Email)
	if u.FirstName != "" || u.LastName != "" {
		fmt.Fprintf(a.out, " (%s %s)", u.FirstName, u.LastName)
	}
	fmt.Fprintln(a.out)
	return nil
}
