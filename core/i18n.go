package core

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/go-playground/locales/cs"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Supported languages
const (
	LangCS = "cs"
	LangEN = "en"
)

// I18n looks up display strings by language and key.
// A key missing from a language table translates to the key itself.
type I18n struct {
	uni      *ut.UniversalTranslator
	fallback string
	tables   map[string]map[string]string
}

// NewI18n builds the translators for tables ({lang: {key: text}}); fallback is used for unknown languages.
func NewI18n(fallback string, tables map[string]map[string]string) (*I18n, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, cs.New())

	if _, found := uni.GetTranslator(fallback); !found {
		return nil, errors.Errorf("unsupported fallback language %q", fallback)
	}

	for lang, table := range tables {
		trans, found := uni.GetTranslator(lang)
		if !found {
			return nil, errors.Errorf("unsupported language %q", lang)
		}
		for key, text := range table {
			if err := trans.Add(key, text, true /* override */); err != nil {
				return nil, errors.Wrapf(err, "adding %s translation %q", lang, key)
			}
		}
	}
	return &I18n{uni: uni, fallback: fallback, tables: tables}, nil
}

// LoadTranslations reads one `<lang>.yaml` file per language from dir.
func LoadTranslations(fsys fs.FS, dir string) (map[string]map[string]string, error) {
	fps, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, errors.Wrap(err, "listing translation files")
	}

	tables := make(map[string]map[string]string, len(fps))
	for _, fp := range fps {
		data, err := fs.ReadFile(fsys, fp)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", fp)
		}
		table := make(map[string]string)
		if err = yaml.Unmarshal(data, &table); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", fp)
		}
		lang := strings.TrimSuffix(path.Base(fp), ".yaml")
		tables[lang] = table
	}
	return tables, nil
}

// T translates key in lang.
func (i *I18n) T(lang, key string) string {
	s, err := i.Translator(lang).T(key)
	if err != nil || s == "" {
		return key
	}
	return s
}

// Translator returns the translator of lang, or the fallback one.
func (i *I18n) Translator(lang string) ut.Translator {
	if trans, found := i.uni.GetTranslator(lang); found {
		return trans
	}
	trans, _ := i.uni.GetTranslator(i.fallback)
	return trans
}

// Has reports whether lang is a supported language.
func (i *I18n) Has(lang string) bool {
	_, found := i.uni.GetTranslator(lang)
	return found
}

// Table returns a copy of the loaded table of lang.
func (i *I18n) Table(lang string) map[string]string {
	table := make(map[string]string, len(i.tables[lang]))
	for k, v := range i.tables[lang] {
		table[k] = v
	}
	return table
}

// Languages returns the languages with a loaded table, sorted.
func (i *I18n) Languages() []string {
	langs := make([]string, 0, len(i.tables))
	for lang := range i.tables {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
