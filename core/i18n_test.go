package core_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/katalog/core"
	appfs "github.com/trezcool/katalog/fs"
)

func TestLoadTranslations(t *testing.T) {
	tables, err := core.LoadTranslations(appfs.FS, appfs.I18nDir)
	require.NoError(t, err)
	require.Contains(t, tables, core.LangCS)
	require.Contains(t, tables, core.LangEN)

	// both languages must translate the same keys
	for key := range tables[core.LangCS] {
		assert.Contains(t, tables[core.LangEN], key)
	}
	assert.Equal(t, len(tables[core.LangCS]), len(tables[core.LangEN]))
	assert.Equal(t, "Katalog Projektů", tables[core.LangCS]["app.title"])

	_, err = core.LoadTranslations(fstest.MapFS{"i18n/cs.yaml": {Data: []byte("a: [")}}, "i18n")
	assert.Error(t, err)
}

func TestI18n(t *testing.T) {
	i18n, err := core.NewI18n(core.LangCS, map[string]map[string]string{
		core.LangCS: {"role.public": "Veřejnost", "only.cs": "jen česky"},
		core.LangEN: {"role.public": "Public"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Public", i18n.T(core.LangEN, "role.public"))
	assert.Equal(t, "Veřejnost", i18n.T(core.LangCS, "role.public"))
	assert.Equal(t, "missing.key", i18n.T(core.LangEN, "missing.key"))
	assert.Equal(t, "only.cs", i18n.T(core.LangEN, "only.cs"))
	assert.Equal(t, "Veřejnost", i18n.T("de", "role.public"), "unknown languages use the fallback")

	assert.True(t, i18n.Has(core.LangEN))
	assert.False(t, i18n.Has("de"))
	assert.Equal(t, []string{core.LangCS, core.LangEN}, i18n.Languages())

	table := i18n.Table(core.LangEN)
	table["role.public"] = "changed"
	assert.Equal(t, "Public", i18n.T(core.LangEN, "role.public"))

	_, err = core.NewI18n("de", nil)
	assert.Error(t, err)
	_, err = core.NewI18n(core.LangCS, map[string]map[string]string{"de": {}})
	assert.Error(t, err)
}
