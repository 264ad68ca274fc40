package adapter

import "encoding/json"

// JSON abstracts JSON encoding so codec failures can be simulated in tests
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	// Marshal encodes v as JSON
	Marshal(v interface{}) ([]byte, error)
	// Unmarshal decodes data into v
	Unmarshal(data []byte, v interface{}) error
}

// RealJSON is the encoding/json backed codec
type RealJSON struct{}

// NewJSON creates the standard JSON codec
func NewJSON() JSON {
	return &RealJSON{}
}

// Marshal encodes v as JSON
func (j *RealJSON) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes data into v
func (j *RealJSON) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
