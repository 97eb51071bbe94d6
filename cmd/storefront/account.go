package main

import (
	"context"
	"fmt"
	"time"

	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/view"
)

type loginCommand struct {
	Email    string `short:"e" long:"email" description:"Account email"`
	Password string `short:"p" long:"password" description:"Password (prompted when omitted)"`
}

func (c *loginCommand) Execute([]string) error {
	email, err := askText(c.Email, "Email:", false)
	if err != nil {
		return err
	}
	password, err := askText(c.Password, "Password:", true)
	if err != nil {
		return err
	}
	return withSession(func(ctx context.Context, s *session) error {
		if _, err := s.Session.Login(ctx, email, password); err != nil {
			return reported(err)
		}
		s.out.AuthBadge(view.BuildAuthBadge(s.Session.Current()))
		return nil
	})
}

type registerCommand struct {
	Name     string `short:"n" long:"name" description:"Display name"`
	Email    string `short:"e" long:"email" description:"Account email"`
	Password string `short:"p" long:"password" description:"Password (prompted when omitted)"`
	Role     string `short:"r" long:"role" choice:"user" choice:"seller" description:"Account type"`
}

func (c *registerCommand) Execute([]string) error {
	name, err := askText(c.Name, "Name:", false)
	if err != nil {
		return err
	}
	email, err := askText(c.Email, "Email:", false)
	if err != nil {
		return err
	}
	password, err := askText(c.Password, "Password:", true)
	if err != nil {
		return err
	}
	role, err := askRole(c.Role)
	if err != nil {
		return err
	}
	return withSession(func(ctx context.Context, s *session) error {
		in := ports.RegisterInput{Name: name, Email: email, Password: password, Role: role}
		if _, err := s.Session.Register(ctx, in); err != nil {
			return reported(err)
		}
		s.out.AuthBadge(view.BuildAuthBadge(s.Session.Current()))
		return nil
	})
}

type logoutCommand struct{}

func (c *logoutCommand) Execute([]string) error {
	return withSession(func(ctx context.Context, s *session) error {
		return s.Session.Logout(ctx)
	})
}

type whoamiCommand struct {
	Token bool `long:"token" description:"Also show what the stored credential claims"`
}

func (c *whoamiCommand) Execute([]string) error {
	return withSession(func(_ context.Context, s *session) error {
		s.out.AuthBadge(view.BuildAuthBadge(s.Session.Current()))
		if !c.Token || !s.Session.Current().Active() {
			return nil
		}
		info, err := s.Session.Claims()
		if err != nil {
			return err
		}
		fmt.Printf("subject: %s\nrole:    %s\n", info.Subject, info.Role)
		if info.ExpiresAt != nil {
			fmt.Printf("expires: %s\n", info.ExpiresAt.Format(time.RFC3339))
		}
		return nil
	})
}

type becomeSellerCommand struct{}

func (c *becomeSellerCommand) Execute([]string) error {
	return withSession(func(ctx context.Context, s *session) error {
		if _, err := s.Session.BecomeSeller(ctx); err != nil {
			return reported(err)
		}
		s.out.AuthBadge(view.BuildAuthBadge(s.Session.Current()))
		return nil
	})
}
