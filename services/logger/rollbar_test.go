package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/katalog/core"
	"github.com/trezcool/katalog/core/catalog"
)

func TestRollbarLogger_prepare(t *testing.T) {
	l := NewDiscardLogger(core.NewTestConfig())
	err := errors.New("boom")
	jan := catalog.Student{ID: "u1", Name: "Jan Novák", Email: "jan.novak@tul.cz"}
	petr := catalog.Student{ID: "u2", Name: "Petr Svoboda", Email: "petr.svoboda@tul.cz"}

	got := l.prepare("submitting feedback", []interface{}{err, jan, petr, map[string]interface{}{"project": "p1"}})
	assert.Equal(t, []interface{}{"submitting feedback", err, map[string]interface{}{"project": "p1"}}, got)
}

func TestRollbarLogger_print(t *testing.T) {
	var buf bytes.Buffer
	l := NewRollbarLogger(log.New(&buf, "", 0), core.NewTestConfig())
	l.Enable(false)

	l.Warn("no recipient", errors.New("not found"), catalog.Student{ID: "u1"})
	assert.Equal(t, "no recipient\nnot found\n", buf.String())
}
