package adapters

import (
	"bytes"
	"context"
	"encoding/gob"
	"encoding/json"
	"strings"

	"github.com/rowzip/rowzip/core"
	"github.com/rowzip/rowzip/core/builders"
)

var _ core.Driver = (*postgresDriver)(nil)

type postgresDriver struct {
	c *builders.Client
}

func (c *postgresDriver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	action := strings.ToLower(strings.Split(query, " ")[0])
	hasReturnValues := strings.Contains(strings.ToLower(query), " returning ")

	if (action == "update" || action == "delete" || action == "insert") && !hasReturnValues {
		con, err := c.c.Conn(ctx)
		if err != nil {
			return nil, err
		}

		rows, err := con.Exec(ctx, query)
		if err != nil {
			_ = con.Close()
			return nil, err
		}
		rows.SetCallback(func() { _ = con.Close() })
		return rows, nil
	}

	return c.c.QueryUntilNotEmpty(ctx, query)
}

func (c *postgresDriver) Close() {
	c.c.Close()
}

// postgresJSONResponse serves as a wrapper around the json response
// to pretty-print the return values
type postgresJSONResponse struct {
	value []byte
}

func newPostgresJSONResponse(val []byte) *postgresJSONResponse {
	return &postgresJSONResponse{
		value: val,
	}
}

func (pj *postgresJSONResponse) String() string {
	var parsed bytes.Buffer
	err := json.Indent(&parsed, pj.value, "", "  ")
	if err != nil {
		return string(pj.value)
	}
	return parsed.String()
}

func (pj *postgresJSONResponse) MarshalJSON() ([]byte, error) {
	if json.Valid(pj.value) {
		return pj.value, nil
	}

	return json.Marshal(pj.value)
}

func (pj *postgresJSONResponse) GobEncode() ([]byte, error) {
	var err error
	w := new(bytes.Buffer)
	encoder := gob.NewEncoder(w)
	err = encoder.Encode(pj.value)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), err
}

func (pj *postgresJSONResponse) GobDecode(buf []byte) error {
	var err error
	r := bytes.NewBuffer(buf)
	decoder := gob.NewDecoder(r)
	err = decoder.Decode(&pj.value)
	if err != nil {
		return err
	}
	return err
}
