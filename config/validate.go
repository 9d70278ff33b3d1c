package config

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/tubemux/tubemux/icon"
	"github.com/tubemux/tubemux/key"
)

var validators = map[string]func(any) error{
	key.IconsVariant: func(v any) error {
		if s, _ := v.(string); !lo.Contains(icon.AvailableVariants(), s) {
			return fmt.Errorf("must be one of %s", strings.Join(icon.AvailableVariants(), ", "))
		}
		return nil
	},
	key.LogsLevel: func(v any) error {
		s, _ := v.(string)
		_, err := logrus.ParseLevel(s)
		return err
	},
	key.MuxContainer:        notEmpty,
	key.MuxFFmpeg:           notEmpty,
	key.DownloadsDir:        notEmpty,
	key.NetworkProbeTimeout: positive,
	key.NetworkTimeout:      positive,
}

func notEmpty(v any) error {
	if s, _ := v.(string); strings.TrimSpace(s) == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

func positive(v any) error {
	if n, _ := v.(int); n <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

// Validate checks a value about to be stored under k.
func Validate(k string, v any) error {
	if _, ok := Default[k]; !ok {
		return fmt.Errorf("unknown key %s", k)
	}

	if validate, ok := validators[k]; ok {
		if err := validate(v); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}

	return nil
}
