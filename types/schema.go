package types

// Schema is the running, accreting shape of a stream's records: field name to
// inferred property. It starts empty each run and only ever grows: fields are
// never pruned, and a field re-appearing with a different value type does not
// change the recorded property (name presence alone decides membership).
type Schema struct {
	Type       string               `json:"type"`
	Properties map[string]*Property `json:"properties"`
}

// Property is a dto for schema properties representation
type Property struct {
	Type []DataType `json:"type"`
}

func NewSchema() *Schema {
	return &Schema{
		Type:       "object",
		Properties: map[string]*Property{},
	}
}

func (s *Schema) HasProperty(column string) bool {
	_, found := s.Properties[column]
	return found
}

// AddProperty records a newly observed field; no-op when the name is known
func (s *Schema) AddProperty(column string, types ...DataType) {
	if s.Properties == nil {
		s.Properties = map[string]*Property{}
	}

	if _, found := s.Properties[column]; found {
		return
	}

	s.Properties[column] = &Property{Type: types}
}

func (s *Schema) Len() int {
	return len(s.Properties)
}
