package base

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/openkcm/slack-scim/pkg/clients/scim"
)

var ErrInvalidAssignment = errors.New("expected key=value")

// Assignments collects repeated -set flags.
type Assignments []string

func (a *Assignments) String() string {
	return strings.Join(*a, ",")
}

func (a *Assignments) Set(value string) error {
	*a = append(*a, value)
	return nil
}

// DocumentFlags describe a payload given as a JSON file and/or assignments.
type DocumentFlags struct {
	File string
	Set  Assignments
}

func (df *DocumentFlags) Register(f *FlagSet) {
	f.StringVar(&df.File, "file", "", `JSON document to send, "-" reads standard input`)
	f.Var(&df.Set, "set",
		"Attribute assignment such as user_name=kaz or name.given_name=Kaz, may be repeated. "+
			"Keys are converted to camelCase and values parsed as JSON when possible")
}

// Document loads the file, if any, and applies the assignments on top.
func (df *DocumentFlags) Document(stdin io.Reader) (scim.Document, error) {
	doc := scim.Document{}

	if df.File != "" {
		var (
			data []byte
			err  error
		)

		if df.File == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(df.File)
		}

		if err != nil {
			return nil, err
		}

		doc, err = scim.ParseDocument(string(data))
		if err != nil {
			return nil, err
		}
	}

	err := Apply(doc, df.Set)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Apply sets every key=value assignment on doc. Dotted keys address nested
// objects; each segment is converted from snake_case to the camelCase wire
// name.
func Apply(doc scim.Document, assignments []string) error {
	for _, assignment := range assignments {
		key, raw, ok := strings.Cut(assignment, "=")
		if !ok || key == "" {
			return fmt.Errorf("%w: %q", ErrInvalidAssignment, assignment)
		}

		segments := strings.Split(key, ".")
		target := map[string]any(doc)

		for _, segment := range segments[:len(segments)-1] {
			name := strcase.ToLowerCamel(segment)

			next, ok := target[name].(map[string]any)
			if !ok {
				if d, isDoc := target[name].(scim.Document); isDoc {
					next = d
				} else {
					next = map[string]any{}
					target[name] = next
				}
			}

			target = next
		}

		target[strcase.ToLowerCamel(segments[len(segments)-1])] = parseValue(raw)
	}

	return nil
}

func parseValue(raw string) any {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any

	err := dec.Decode(&v)
	if err != nil || dec.More() {
		return raw
	}

	return v
}
