package main

import (
	"encoding/json"
	"io"

	"github.com/go-faster/errors"
)

func writeJSONLine(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return withCode(exitOther, errors.Wrap(err, "json encode"))
	}
	return nil
}
