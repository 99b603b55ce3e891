package document

// PrimitiveField is the single field of a scalar parameter document.
type PrimitiveField struct {
	Name string `json:"name"`
	Type Types  `json:"type"`
}

var _ Field = (*PrimitiveField)(nil)

func (p *PrimitiveField) Kind() FieldKind {
	return FieldKindPrimitive
}

func (p *PrimitiveField) GetName() string {
	return p.Name
}

func (p *PrimitiveField) GetType() Types {
	return p.Type
}

// GetExpression selects the context item, which is the whole parameter value.
func (p *PrimitiveField) GetExpression() string {
	return "."
}

func (p *PrimitiveField) GetPath() string {
	return "."
}

// PrimitiveDocument is a document without schema: a single scalar value.
type PrimitiveDocument struct {
	DocumentType DocumentType        `json:"documentType"`
	DocumentID   string              `json:"documentId"`
	Field        *PrimitiveField     `json:"field"`
	Definition   *DocumentDefinition `json:"-"`
}

// NewPrimitiveDocument creates the scalar document for definition.
func NewPrimitiveDocument(definition *DocumentDefinition) *PrimitiveDocument {
	doc := &PrimitiveDocument{Definition: definition}
	if definition != nil {
		doc.DocumentType = definition.DocumentType
		doc.DocumentID = definition.Name
	}
	doc.Field = &PrimitiveField{Name: doc.DocumentID, Type: AnyType}
	return doc
}

// Fields returns the document's fields as the shared variant type.
func (p *PrimitiveDocument) Fields() []Field {
	return []Field{p.Field}
}
