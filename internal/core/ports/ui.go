package ports

import "github.com/99minutos/storefront/internal/core/domain"

// Level classifies a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier is the transient feedback sink (toasts and alerts).
type Notifier interface {
	Notify(level Level, msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, msg string)

func (f NotifierFunc) Notify(level Level, msg string) { f(level, msg) }

// Navigator performs redirects requested by the controllers.
type Navigator interface {
	Redirect(page domain.Page)
}

// Confirmer asks the user an explicit yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(page domain.Page)

func (f NavigatorFunc) Redirect(page domain.Page) { f(page) }
