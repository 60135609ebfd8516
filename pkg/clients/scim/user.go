package scim

const EnterpriseExtensionKey = "urn:scim:schemas:extension:enterprise:1.0"

type Name struct {
	GivenName  *string
	FamilyName *string
}

// MultiValuedAttribute is the shape shared by emails, phone numbers and roles.
type MultiValuedAttribute struct {
	Value   *string
	Type    *string
	Primary *bool
}

type Photo struct {
	Value *string
	Type  *string
}

type Address struct {
	StreetAddress *string
	Locality      *string
	Region        *string
	PostalCode    *string
	Country       *string
	Primary       *bool
}

// Member references another resource by id. It is used for group members and
// for the groups a user belongs to.
type Member struct {
	Value   *string
	Display *string
}

// Meta is populated by the server.
type Meta struct {
	Created  *string
	Location *string
}

type Manager struct {
	ManagerID *string
}

type EnterpriseExtension struct {
	EmployeeNumber *string
	CostCenter     *string
	Organization   *string
	Division       *string
	Department     *string
	Manager        *Manager
}

type User struct {
	ID           *string
	ExternalID   *string
	UserName     *string
	NickName     *string
	DisplayName  *string
	ProfileURL   *string
	Title        *string
	Timezone     *string
	Active       *bool
	Name         *Name
	Emails       []MultiValuedAttribute
	PhoneNumbers []MultiValuedAttribute
	Roles        []MultiValuedAttribute
	Photos       []Photo
	Addresses    []Address
	Groups       []Member
	Meta         *Meta
	Enterprise   *EnterpriseExtension
	Schemas      []string
}

// UserFromDocument decodes a user. Absent and null fields stay nil.
func UserFromDocument(doc Document) (*User, error) {
	d := newDecoder(doc)
	user := decodeUser(d)

	err := d.err()
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func decodeUser(d *decoder) User {
	return User{
		ID:           d.str("id"),
		ExternalID:   d.str("externalId"),
		UserName:     d.str("userName"),
		NickName:     d.str("nickName"),
		DisplayName:  d.str("displayName"),
		ProfileURL:   d.str("profileUrl"),
		Title:        d.str("title"),
		Timezone:     d.str("timezone"),
		Active:       d.boolean("active"),
		Name:         nested(d, "name", decodeName),
		Emails:       nestedList(d, "emails", decodeMultiValuedAttribute),
		PhoneNumbers: nestedList(d, "phoneNumbers", decodeMultiValuedAttribute),
		Roles:        nestedList(d, "roles", decodeMultiValuedAttribute),
		Photos:       nestedList(d, "photos", decodePhoto),
		Addresses:    nestedList(d, "addresses", decodeAddress),
		Groups:       nestedList(d, "groups", decodeMember),
		Meta:         nested(d, "meta", decodeMeta),
		Enterprise:   nested(d, EnterpriseExtensionKey, decodeEnterpriseExtension),
		Schemas:      d.strings("schemas"),
	}
}

func (u *User) ToDocument() Document {
	if u == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "id", u.ID)
	setValue(doc, "externalId", u.ExternalID)
	setValue(doc, "userName", u.UserName)
	setValue(doc, "nickName", u.NickName)
	setValue(doc, "displayName", u.DisplayName)
	setValue(doc, "profileUrl", u.ProfileURL)
	setValue(doc, "title", u.Title)
	setValue(doc, "timezone", u.Timezone)
	setValue(doc, "active", u.Active)
	setDocument(doc, "name", u.Name.ToDocument())
	setList(doc, "emails", u.Emails, (*MultiValuedAttribute).ToDocument)
	setList(doc, "phoneNumbers", u.PhoneNumbers, (*MultiValuedAttribute).ToDocument)
	setList(doc, "roles", u.Roles, (*MultiValuedAttribute).ToDocument)
	setList(doc, "photos", u.Photos, (*Photo).ToDocument)
	setList(doc, "addresses", u.Addresses, (*Address).ToDocument)
	setList(doc, "groups", u.Groups, (*Member).ToDocument)
	setDocument(doc, "meta", u.Meta.ToDocument())
	setDocument(doc, EnterpriseExtensionKey, u.Enterprise.ToDocument())
	setStrings(doc, "schemas", u.Schemas)

	return doc
}

func decodeName(d *decoder) Name {
	return Name{
		GivenName:  d.str("givenName"),
		FamilyName: d.str("familyName"),
	}
}

func (n *Name) ToDocument() Document {
	if n == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "givenName", n.GivenName)
	setValue(doc, "familyName", n.FamilyName)

	return doc
}

func decodeMultiValuedAttribute(d *decoder) MultiValuedAttribute {
	return MultiValuedAttribute{
		Value:   d.str("value"),
		Type:    d.str("type"),
		Primary: d.boolean("primary"),
	}
}

func (a *MultiValuedAttribute) ToDocument() Document {
	if a == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "value", a.Value)
	setValue(doc, "type", a.Type)
	setValue(doc, "primary", a.Primary)

	return doc
}

func decodePhoto(d *decoder) Photo {
	return Photo{
		Value: d.str("value"),
		Type:  d.str("type"),
	}
}

func (p *Photo) ToDocument() Document {
	if p == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "value", p.Value)
	setValue(doc, "type", p.Type)

	return doc
}

func decodeAddress(d *decoder) Address {
	return Address{
		StreetAddress: d.str("streetAddress"),
		Locality:      d.str("locality"),
		Region:        d.str("region"),
		PostalCode:    d.str("postalCode"),
		Country:       d.str("country"),
		Primary:       d.boolean("primary"),
	}
}

func (a *Address) ToDocument() Document {
	if a == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "streetAddress", a.StreetAddress)
	setValue(doc, "locality", a.Locality)
	setValue(doc, "region", a.Region)
	setValue(doc, "postalCode", a.PostalCode)
	setValue(doc, "country", a.Country)
	setValue(doc, "primary", a.Primary)

	return doc
}

func decodeMember(d *decoder) Member {
	return Member{
		Value:   d.str("value"),
		Display: d.str("display"),
	}
}

func (m *Member) ToDocument() Document {
	if m == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "value", m.Value)
	setValue(doc, "display", m.Display)

	return doc
}

func decodeMeta(d *decoder) Meta {
	return Meta{
		Created:  d.str("created"),
		Location: d.str("location"),
	}
}

func (m *Meta) ToDocument() Document {
	if m == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "created", m.Created)
	setValue(doc, "location", m.Location)

	return doc
}

func decodeManager(d *decoder) Manager {
	return Manager{ManagerID: d.str("managerId")}
}

func (m *Manager) ToDocument() Document {
	if m == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "managerId", m.ManagerID)

	return doc
}

func decodeEnterpriseExtension(d *decoder) EnterpriseExtension {
	return EnterpriseExtension{
		EmployeeNumber: d.str("employeeNumber"),
		CostCenter:     d.str("costCenter"),
		Organization:   d.str("organization"),
		Division:       d.str("division"),
		Department:     d.str("department"),
		Manager:        nested(d, "manager", decodeManager),
	}
}

func (e *EnterpriseExtension) ToDocument() Document {
	if e == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "employeeNumber", e.EmployeeNumber)
	setValue(doc, "costCenter", e.CostCenter)
	setValue(doc, "organization", e.Organization)
	setValue(doc, "division", e.Division)
	setValue(doc, "department", e.Department)
	setDocument(doc, "manager", e.Manager.ToDocument())

	return doc
}
