package client

import (
	"fmt"

	"ducktodo/pkg/logger"
)

const LoginPath = "/login"

// Notifier shows a human-readable error to the user.
type Notifier interface {
	Error(message string)
}

// Navigator reports and replaces the current view.
type Navigator interface {
	CurrentPath() string
	Replace(path string)
}

// conditionalNavigator replaces the view only when it differs from path,
// as one atomic step.
type conditionalNavigator interface {
	ReplaceUnless(path string) bool
}

// bestEffort runs fn and discards any failure, panics included. The caller
// always continues.
func bestEffort(log *logger.Logger, op string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug("Best-effort operation panicked", "op", op, "panic", fmt.Sprint(r))
		}
	}()
	if err := fn(); err != nil {
		log.Debug("Best-effort operation failed", "op", op, "error", err)
	}
}

// apply executes the side effects of o. It never blocks the rejection or
// resolution of the call beyond these synchronous steps.
func (c *Client) apply(o Outcome) {
	switch o.Kind {
	case OutcomeSuccess:
		if o.Token != "" {
			c.saveToken(o.Token)
		}
	case OutcomeSessionExpired:
		c.logger.Warn("Session expired", "code", o.Code, "status", o.Status)
		c.notify(o.Message)
		c.clearToken()
		c.redirectToLogin()
	case OutcomeBusinessError, OutcomeServerError, OutcomeTransportError:
		c.notify(o.Message)
	}
}

func (c *Client) notify(msg string) {
	if c.notifier == nil {
		return
	}
	bestEffort(c.logger, "notify", func() error {
		c.notifier.Error(msg)
		return nil
	})
}

func (c *Client) saveToken(token string) {
	bestEffort(c.logger, "save token", func() error {
		c.tokens.Save(token)
		return nil
	})
}

func (c *Client) clearToken() {
	bestEffort(c.logger, "clear token", func() error {
		c.tokens.Clear()
		return nil
	})
}

func (c *Client) currentToken() string {
	var token string
	bestEffort(c.logger, "read token", func() error {
		token = c.tokens.Current()
		return nil
	})
	return token
}

func (c *Client) redirectToLogin() {
	if c.navigator == nil {
		return
	}
	bestEffort(c.logger, "redirect to login", func() error {
		if nav, ok := c.navigator.(conditionalNavigator); ok {
			nav.ReplaceUnless(LoginPath)
			return nil
		}
		if c.navigator.CurrentPath() != LoginPath {
			c.navigator.Replace(LoginPath)
		}
		return nil
	})
}
