package main

import (
	"fmt"
	"strings"

	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/erikgeiser/promptkit/textinput"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// askText prompts for a value unless one was given on the command line.
func askText(given, prompt string, hidden bool) (string, error) {
	if strings.TrimSpace(given) != "" {
		return given, nil
	}
	in := textinput.New(prompt)
	in.Hidden = hidden
	in.Validate = func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", strings.TrimSuffix(prompt, ":"))
		}
		return nil
	}
	return in.RunPrompt()
}

// askRole offers the self-service account types.
func askRole(given string) (domain.Role, error) {
	if given != "" {
		return domain.Role(given), nil
	}
	sel := selection.New("Account type", []string{string(domain.RoleUser), string(domain.RoleSeller)})
	choice, err := sel.RunPrompt()
	if err != nil {
		return "", err
	}
	return domain.Role(choice), nil
}

// terminalConfirmer asks yes/no on the terminal; assumeYes skips the prompt.
func terminalConfirmer(assumeYes bool) ports.Confirmer {
	return ports.ConfirmFunc(func(prompt string) (bool, error) {
		if assumeYes {
			return true, nil
		}
		return confirmation.New(prompt, confirmation.No).RunPrompt()
	})
}
