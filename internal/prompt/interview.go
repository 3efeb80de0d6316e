package prompt

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-tinymce/pkg/config"
)

// NoLanguage is the select option that leaves the language unset.
const NoLanguage = "(request locale)"

// Answers are the overrides collected by Interview.
type Answers struct {
	Selector      string
	Language      string
	TinymceJQuery bool
	IncludeJQuery bool
}

// Overrides returns the answers as a configuration override tree.
func (a Answers) Overrides() map[string]any {
	out := map[string]any{
		config.KeyTinymceJQuery: a.TinymceJQuery,
		config.KeyIncludeJQuery: a.IncludeJQuery,
	}
	if a.Selector != "" {
		out[config.KeySelector] = a.Selector
	}
	if a.Language != "" {
		out[config.KeyLanguage] = a.Language
	}
	return out
}

// Interview asks for the common per-page overrides. defaults pre-fills the
// prompts; languages are the codes offered for selection.
func Interview(ctx context.Context, driver Driver, defaults Answers, languages []string) (Answers, error) {
	if driver == nil {
		return Answers{}, errors.New("prompt: driver is nil")
	}

	selector, err := driver.Input(ctx, InputConfig{
		Message: "Editor selector",
		Default: defaults.Selector,
		Help:    "CSS selector matching the textareas to enhance",
		Validator: func(value string) error {
			if strings.TrimSpace(value) == "" {
				return errors.New("selector is required")
			}
			return nil
		},
	})
	if err != nil {
		return Answers{}, err
	}

	options := append([]string{NoLanguage}, languages...)
	defaultIndex := 0
	for i, code := range options {
		if code == defaults.Language {
			defaultIndex = i
		}
	}
	choice, err := driver.Select(ctx, SelectConfig{
		Message:      "Editor language",
		Options:      options,
		DefaultIndex: defaultIndex,
		PageSize:     10,
	})
	if err != nil {
		return Answers{}, err
	}
	language := ""
	if choice > 0 && choice < len(options) {
		language = options[choice]
	}

	tinymceJQuery, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Use the jQuery editor build?",
		Default: defaults.TinymceJQuery,
	})
	if err != nil {
		return Answers{}, err
	}

	includeJQuery, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Include jQuery itself?",
		Default: defaults.IncludeJQuery,
	})
	if err != nil {
		return Answers{}, err
	}

	return Answers{
		Selector:      strings.TrimSpace(selector),
		Language:      language,
		TinymceJQuery: tinymceJQuery,
		IncludeJQuery: includeJQuery,
	}, nil
}
