package scim

type Group struct {
	ID          *string
	DisplayName *string
	Members     []Member
	Meta        *Meta
	Schemas     []string
}

// GroupFromDocument decodes a group. Absent and null fields stay nil.
func GroupFromDocument(doc Document) (*Group, error) {
	d := newDecoder(doc)
	group := decodeGroup(d)

	err := d.err()
	if err != nil {
		return nil, err
	}

	return &group, nil
}

func decodeGroup(d *decoder) Group {
	return Group{
		ID:          d.str("id"),
		DisplayName: d.str("displayName"),
		Members:     nestedList(d, "members", decodeMember),
		Meta:        nested(d, "meta", decodeMeta),
		Schemas:     d.strings("schemas"),
	}
}

func (g *Group) ToDocument() Document {
	if g == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "id", g.ID)
	setValue(doc, "displayName", g.DisplayName)
	setList(doc, "members", g.Members, (*Member).ToDocument)
	setDocument(doc, "meta", g.Meta.ToDocument())
	setStrings(doc, "schemas", g.Schemas)

	return doc
}
