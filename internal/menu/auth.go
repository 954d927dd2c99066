package menu

import (
	"context"
	"errors"

	"pfm/internal/core"
	"pfm/internal/log"
	"pfm/internal/services"
)

func (m *Menu) login(ctx context.Context) error {
	username, err := m.prompt("Username: ")
	if err != nil {
		return err
	}
	password, err := m.readPassword("Password: ")
	if err != nil {
		return err
	}

	profile, err := m.deps.Auth.Login(ctx, username, password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		m.fail("Invalid credentials.")
		return nil
	}
	if err != nil {
		return m.report(ctx, err)
	}

	m.ok("Welcome back, " + profile.Username + "!")
	m.logger.InfoContext(ctx, "Session started", log.FieldUsername, profile.Username)
	return m.financeMenu(ctx, profile.Username)
}

func (m *Menu) register(ctx context.Context) error {
	m.println("\n--- REGISTER ---")

	var reg core.Registration
	var err error
	if reg.FirstName, err = m.promptValid("First Name: ", m.prompt, core.ValidateName); err != nil {
		return err
	}
	if reg.LastName, err = m.promptValid("Last Name: ", m.prompt, core.ValidateName); err != nil {
		return err
	}
	if reg.Age, err = m.promptValid("Age: ", m.prompt, core.ValidateAge); err != nil {
		return err
	}
	if reg.Email, err = m.promptValid("Email: ", m.prompt, core.ValidateEmail); err != nil {
		return err
	}
	if reg.Username, err = m.promptUsername(ctx); err != nil {
		return err
	}
	password, err := m.promptValid("Password: ", m.readPassword, core.ValidatePassword)
	if err != nil {
		return err
	}

	err = m.deps.Auth.Register(ctx, reg, password)
	var verrs core.ValidationErrors
	switch {
	case err == nil:
		m.ok("Registration successful! Please login.\n")
	case errors.Is(err, core.ErrAlreadyExists):
		m.fail("Username already taken.")
	case errors.As(err, &verrs):
		for _, e := range verrs {
			m.fail(e)
		}
	default:
		return m.report(ctx, err)
	}
	return nil
}

func (m *Menu) promptUsername(ctx context.Context) (string, error) {
	for {
		username, err := m.prompt("Username: ")
		if err != nil {
			return "", err
		}
		if errs := core.ValidateUsername(username); len(errs) > 0 {
			for _, e := range errs {
				m.fail(e)
			}
			continue
		}
		taken, err := m.deps.Auth.UsernameTaken(ctx, username)
		if err != nil {
			return "", err
		}
		if taken {
			m.fail("Username already taken.")
			continue
		}
		return username, nil
	}
}

func (m *Menu) changePassword(ctx context.Context, username string) error {
	m.println("\n--- CHANGE PASSWORD ---\n")

	current, err := m.readPassword("Enter current password: ")
	if err != nil {
		return err
	}
	err = m.deps.Auth.CheckPassword(ctx, username, current)
	if errors.Is(err, services.ErrInvalidCredentials) {
		m.fail("Incorrect current password.\n")
		return nil
	}
	if err != nil {
		return err
	}

	var next string
	for {
		next, err = m.promptValid("Enter new password: ", m.readPassword, core.ValidatePassword)
		if err != nil {
			return err
		}
		confirm, err := m.readPassword("Confirm new password: ")
		if err != nil {
			return err
		}
		if next == confirm {
			break
		}
		m.fail("Passwords do not match.\n")
	}

	if err := m.deps.Auth.ChangePassword(ctx, username, current, next); err != nil {
		return err
	}
	m.ok("Password successfully changed!\n")
	return nil
}
