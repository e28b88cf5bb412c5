package errors

import (
	"bytes"
	"encoding/json"
)

// JSONEncode renders r as deterministic (sorted-key, via encoding/json's
// native map ordering) JSON for tool consumption, mirroring the teacher's
// ailang.error/v1 schema under the novalang.error/v1 name.
func JSONEncode(r *Report) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// SafeEncode never fails: it encodes err as a minimal Report even when err
// carries no structured Report of its own.
func SafeEncode(err error, phase string) []byte {
	if err == nil {
		return nil
	}
	rep, ok := AsReport(err)
	if !ok {
		rep = &Report{
			Schema:  "novalang.error/v1",
			Code:    "ERR000",
			Phase:   phase,
			Message: err.Error(),
		}
	}
	data, encErr := JSONEncode(rep)
	if encErr != nil {
		return []byte(`{"schema":"novalang.error/v1","code":"ERR000","message":"encoding failed"}`)
	}
	return data
}
