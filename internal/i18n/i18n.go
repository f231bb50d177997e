// Package i18n holds the translated UI strings.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// Supported languages, in switcher order
const (
	LangRU = "ru"
	LangKZ = "kz"
	LangEN = "en"
)

// DefaultLang is used when no preference is stored
const DefaultLang = LangRU

var languages = []string{LangRU, LangKZ, LangEN}

type table struct {
	Name     string            `yaml:"name"`
	Strings  map[string]string `yaml:"strings"`
	Statuses map[string]string `yaml:"statuses"`
}

// Language is an entry of the language switcher
type Language struct {
	Code string
	Name string
}

// Bundle maps a key and a language to a display string
type Bundle struct {
	defaultLang string
	tables      map[string]*table
}

// Load parses the embedded locale tables. defaultLang falls back to DefaultLang when unknown.
func Load(defaultLang string) (*Bundle, error) {
	b := &Bundle{tables: make(map[string]*table, len(languages))}
	for _, lang := range languages {
		raw, err := localesFS.ReadFile(path.Join("locales", lang+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}
		var t table
		if err := yaml.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}
		b.tables[lang] = &t
	}

	b.defaultLang = DefaultLang
	if _, ok := b.tables[defaultLang]; ok {
		b.defaultLang = defaultLang
	}
	return b, nil
}

// MustLoad is Load for package initialization and tests
func MustLoad(defaultLang string) *Bundle {
	b, err := Load(defaultLang)
	if err != nil {
		panic(err)
	}
	return b
}

// DefaultLang returns the fallback language of the bundle
func (b *Bundle) DefaultLang() string {
	return b.defaultLang
}

// Normalize maps an unknown or empty language to the default one
func (b *Bundle) Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := b.tables[lang]; ok {
		return lang
	}
	return b.defaultLang
}

// Languages lists the supported languages for the switcher
func (b *Bundle) Languages() []Language {
	out := make([]Language, 0, len(languages))
	for _, code := range languages {
		out = append(out, Language{Code: code, Name: b.tables[code].Name})
	}
	return out
}

// T translates key, falling back to the default language and then to the key itself
func (b *Bundle) T(lang, key string) string {
	if t, ok := b.tables[lang]; ok {
		if s, ok := t.Strings[key]; ok {
			return s
		}
	}
	if s, ok := b.tables[b.defaultLang].Strings[key]; ok {
		return s
	}
	return key
}

// Status translates an order status; unknown statuses are shown as is
func (b *Bundle) Status(lang, status string) string {
	if t, ok := b.tables[lang]; ok {
		if s, ok := t.Statuses[status]; ok {
			return s
		}
	}
	if s, ok := b.tables[b.defaultLang].Statuses[status]; ok {
		return s
	}
	return status
}

// Keys returns every key of the language table, for completeness checks
func (b *Bundle) Keys(lang string) []string {
	t, ok := b.tables[lang]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(t.Strings))
	for k := range t.Strings {
		keys = append(keys, k)
	}
	return keys
}

/*
This project is the web client of the Smart Canteen ordering service. It renders the menu, cart, kitchen and admin pages on top of the canteen backend API.
Smart Canteen Web Copyright (C) 2025 Smart Canteen contributors
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
