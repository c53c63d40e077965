package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// rule restricts the values a field accepts.
type rule struct {
	check func(any) error
	hint  string
}

func intBetween(low, high int) rule {
	return rule{
		hint: fmt.Sprintf("%d to %d", low, high),
		check: func(v any) error {
			n, ok := v.(int)
			if !ok {
				return fmt.Errorf("expected an integer, got %T", v)
			}
			if n < low || n > high {
				return fmt.Errorf("%d is out of range [%d, %d]", n, low, high)
			}
			return nil
		},
	}
}

func oneOf(options ...string) rule {
	return rule{
		hint: strings.Join(options, ", "),
		check: func(v any) error {
			s, _ := v.(string)
			if !lo.Contains(options, s) {
				return fmt.Errorf("%q is not one of %v", s, options)
			}
			return nil
		},
	}
}

var nonEmpty = rule{
	hint: "non-empty",
	check: func(v any) error {
		if s, _ := v.(string); s == "" {
			return errors.New("must not be empty")
		}
		return nil
	},
}

var httpURL = rule{
	hint: "http(s) URL",
	check: func(v any) error {
		s, _ := v.(string)
		u, err := url.Parse(s)
		if err != nil {
			return err
		}
		if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
			return fmt.Errorf("%q is not an http(s) URL", s)
		}
		return nil
	},
}
