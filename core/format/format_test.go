package format_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rowzip/rowzip/core"
	"github.com/rowzip/rowzip/core/format"
)

func TestCSV(t *testing.T) {
	r := require.New(t)

	out, err := format.NewCSV().Format(
		core.Header{"id", "name"},
		[]core.Row{{1, "maja"}, {2, nil}},
		&core.FormatterOpts{},
	)
	r.NoError(err)

	expected := "id,name\n1,maja\n2,\n"
	r.Equal(expected, string(out))
}

func TestJSON(t *testing.T) {
	r := require.New(t)

	out, err := format.NewJSON().Format(
		core.Header{"id", "name"},
		[]core.Row{{1, "maja"}, {2, nil}},
		&core.FormatterOpts{},
	)
	r.NoError(err)

	expected := `[
  {
    "id": 1,
    "name": "maja"
  },
  {
    "id": 2,
    "name": null
  }
]`
	r.Equal(expected, string(out))
}

func TestJSON_RowWiderThanHeader(t *testing.T) {
	r := require.New(t)

	out, err := format.NewJSON().Format(
		core.Header{"id"},
		[]core.Row{{1, "extra"}},
		&core.FormatterOpts{},
	)
	r.NoError(err)

	r.Contains(string(out), "<unknown-field-1>")
}

func TestTable(t *testing.T) {
	r := require.New(t)

	out, err := format.NewTable().Format(
		core.Header{"id", "name"},
		[]core.Row{{1, "maja"}, {2, "buddy"}},
		&core.FormatterOpts{},
	)
	r.NoError(err)

	rendered := string(out)
	r.Contains(rendered, "id")
	r.Contains(rendered, "name")
	r.Contains(rendered, "maja")
	r.Contains(rendered, "buddy")
}

func TestTable_ChunkStartOffsetsRowNumbers(t *testing.T) {
	r := require.New(t)

	out, err := format.NewTable().Format(
		core.Header{"id"},
		[]core.Row{{"x"}},
		&core.FormatterOpts{ChunkStart: 41},
	)
	r.NoError(err)

	// row numbering continues from the chunk offset
	r.Contains(string(out), "42")
}
