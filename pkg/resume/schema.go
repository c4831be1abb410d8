package resume

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/artem13815/cvpolish/pkg/cvparse"
)

// ErrInvalidRecord is returned for record payloads that fail validation.
var ErrInvalidRecord = errors.New("invalid record")

//go:embed record.schema.json
var recordSchemaJSON []byte

var recordSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.schema.json", bytes.NewReader(recordSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("record.schema.json")
})

// DecodeRecord validates a JSON record payload and decodes it.
func DecodeRecord(data []byte) (cvparse.Record, error) {
	schema, err := recordSchema()
	if err != nil {
		return cvparse.Record{}, fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return cvparse.Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if err := schema.Validate(v); err != nil {
		return cvparse.Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	var rec cvparse.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return cvparse.Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	rec.Normalize()
	return rec, nil
}

// DecodeRecordValue validates an already decoded JSON value, such as one
// field of a larger request body.
func DecodeRecordValue(raw json.RawMessage) (cvparse.Record, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return cvparse.Record{}, fmt.Errorf("%w: missing", ErrInvalidRecord)
	}
	return DecodeRecord(raw)
}
