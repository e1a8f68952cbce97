package actions

import (
	"fmt"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/api"
)

func sessionSetValue(c buffalo.Context, key string, value any) error {
	c.Session().Set(key, value)
	if err := c.Session().Save(); err != nil {
		return fmt.Errorf("sessionSetValue error, %w", err)
	}
	return nil
}

func sessionGetString(c buffalo.Context, key string) (string, error) {
	v := c.Session().Get(key)
	if v == nil {
		err := fmt.Errorf("key '%s' not found in session", key)
		return "", api.NewAppError(err, api.ErrorMissingSessionKey, api.CategoryInternal)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("session value '%s' is a %T, not a string", key, v)
	}
	return s, nil
}

func clearSession(c buffalo.Context) error {
	c.Session().Clear()
	if err := c.Session().Save(); err != nil {
		return fmt.Errorf("unable to save cleared session: %w", err)
	}
	return nil
}
