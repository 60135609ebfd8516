package scim

// ErrorDetail is the provider error payload found under "Errors".
type ErrorDetail struct {
	Code        *int
	Description *string
}

func decodeErrorDetail(d *decoder) ErrorDetail {
	return ErrorDetail{
		Code:        d.integer("code"),
		Description: d.str("description"),
	}
}

func (e *ErrorDetail) ToDocument() Document {
	if e == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "code", e.Code)
	setValue(doc, "description", e.Description)

	return doc
}

// ListResponse is the envelope of a search result.
type ListResponse[T any] struct {
	Schemas      []string
	TotalResults *int
	ItemsPerPage *int
	StartIndex   *int
	Resources    []T
	Errors       *ErrorDetail
}

type (
	UserList  = ListResponse[User]
	GroupList = ListResponse[Group]
)

func UserListFromDocument(doc Document) (*UserList, error) {
	return listFromDocument(doc, decodeUser)
}

func GroupListFromDocument(doc Document) (*GroupList, error) {
	return listFromDocument(doc, decodeGroup)
}

func listFromDocument[T any](doc Document, decodeResource func(*decoder) T) (*ListResponse[T], error) {
	d := newDecoder(doc)
	list := ListResponse[T]{
		Schemas:      d.strings("schemas"),
		TotalResults: d.integer("totalResults"),
		ItemsPerPage: d.integer("itemsPerPage"),
		StartIndex:   d.integer("startIndex"),
		Resources:    nestedList(d, "Resources", decodeResource),
		Errors:       nested(d, "Errors", decodeErrorDetail),
	}

	err := d.err()
	if err != nil {
		return nil, err
	}

	return &list, nil
}

// ToDocument encodes the envelope; resources are encoded through their own
// ToDocument method.
func (l *ListResponse[T]) ToDocument() Document {
	if l == nil {
		return nil
	}

	doc := Document{}
	setStrings(doc, "schemas", l.Schemas)
	setValue(doc, "totalResults", l.TotalResults)
	setValue(doc, "itemsPerPage", l.ItemsPerPage)
	setValue(doc, "startIndex", l.StartIndex)
	setList(doc, "Resources", l.Resources, func(r *T) Document {
		if p, ok := any(r).(Payload); ok {
			return p.ToDocument()
		}

		return nil
	})
	setDocument(doc, "Errors", l.Errors.ToDocument())

	return doc
}
