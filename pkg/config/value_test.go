package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, doc string) Table {
	t.Helper()
	var raw map[string]interface{}
	require.NoError(t, toml.Unmarshal([]byte(doc), &raw))
	return Table(raw)
}

func TestTableAccessors(t *testing.T) {
	tbl := decode(t, `
name = "nyan"
count = 3
[files]
`)

	s, err := tbl.String("name")
	require.NoError(t, err)
	assert.Equal(t, "nyan", s)

	_, err = tbl.Table("files")
	require.NoError(t, err)

	tests := []struct {
		name   string
		lookup func() error
		want   CheckError
	}{
		{
			name:   "missing string",
			lookup: func() error { _, err := tbl.String("nope"); return err },
			want:   CheckError{Key: "nope", Reason: ReasonMissing, Want: KindString},
		},
		{
			name:   "integer as string",
			lookup: func() error { _, err := tbl.String("count"); return err },
			want:   CheckError{Key: "count", Reason: ReasonMismatch, Want: KindString, Got: KindInteger},
		},
		{
			name:   "string as table",
			lookup: func() error { _, err := tbl.Table("name"); return err },
			want:   CheckError{Key: "name", Reason: ReasonMismatch, Want: KindTable, Got: KindString},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lookup()
			var cerr *CheckError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.want, *cerr)
		})
	}
}

func TestKindOf(t *testing.T) {
	tbl := decode(t, `
s = "x"
i = 1
f = 1.5
b = true
d = 1979-05-27
dt = 1979-05-27T07:32:00Z
a = [1, 2]
[t]
`)

	want := map[string]Kind{
		"s":  KindString,
		"i":  KindInteger,
		"f":  KindFloat,
		"b":  KindBoolean,
		"d":  KindDatetime,
		"dt": KindDatetime,
		"a":  KindArray,
		"t":  KindTable,
	}
	for key, kind := range want {
		assert.Equal(t, kind, KindOf(tbl[key]), key)
	}
	assert.Equal(t, KindUnknown, KindOf(struct{}{}))
}

func TestCheckErrorMessage(t *testing.T) {
	assert.Equal(t, "files is missing", (&CheckError{Key: "files", Reason: ReasonMissing}).Error())
	assert.Equal(t, "source must be a string, not a integer",
		(&CheckError{Key: "source", Reason: ReasonMismatch, Want: KindString, Got: KindInteger}).Error())
}
