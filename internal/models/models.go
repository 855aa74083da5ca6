package models

// Extraction is one typed span pulled out of a document by the model.
type Extraction struct {
	ExtractionClass string            `json:"extraction_class"`
	ExtractionText  string            `json:"extraction_text"`
	Attributes      map[string]string `json:"attributes,omitempty"`
}

// ExampleData is a few-shot example pairing input text with the extractions
// the model is expected to produce for it.
type ExampleData struct {
	Text        string       `json:"text"`
	Extractions []Extraction `json:"extractions"`
}

// AnnotatedDocument is the result of one extraction call: the resolved text
// together with every extraction found in it.
type AnnotatedDocument struct {
	DocumentID  string       `json:"document_id"`
	Text        string       `json:"text"`
	Extractions []Extraction `json:"extractions"`
}
