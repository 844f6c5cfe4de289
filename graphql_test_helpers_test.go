package graphql

import "context"

// testSchema builds a small Widget/Gadget schema (an interface Item with
// two implementing objects, plus a Query root) reused across parser and
// executor tests so each test file doesn't repeat builder boilerplate.
func testSchema(t testingT) *Schema {
	b := NewSchemaBuilder()

	item := b.Interface("Item", "", nil)
	item.FieldFunc("id", "ID!")
	item.FieldFunc("name", "String!")

	widget := b.Object("Widget", "", Widget{})
	widget.FieldFunc("id", "ID!", Attr("ID"))
	widget.FieldFunc("name", "String!", Attr("Name"))
	widget.FieldFunc("weight", "Int", Attr("Weight"))
	widget.Implements("Item")

	gadget := b.Object("Gadget", "", Gadget{})
	gadget.FieldFunc("id", "ID!", Attr("ID"))
	gadget.FieldFunc("name", "String!", Attr("Name"))
	gadget.Implements("Item")

	query := b.Object("Query", "", nil)
	query.FieldFunc("item", "Item", Method("item", func(_ context.Context, _, args interface{}) (interface{}, error) {
		a := args.(map[string]interface{})
		if a["id"] == "w1" {
			return &Widget{ID: "w1", Name: "Sprocket", Weight: 3}, nil
		}
		return &Gadget{ID: "g1", Name: "Gizmo"}, nil
	}), WithArgs(map[string]Arg{"id": {TypeRef: "ID!"}}))
	query.FieldFunc("widgets", "[Widget!]!", Method("widgets", func(context.Context, interface{}, interface{}) (interface{}, error) {
		return []*Widget{{ID: "w1", Name: "Sprocket", Weight: 3}, {ID: "w2", Name: "Cog", Weight: 5}}, nil
	}))
	query.FieldFunc("requiredMissing", "String!", Method("requiredMissing", func(context.Context, interface{}, interface{}) (interface{}, error) {
		return nil, nil
	}))
	b.SetQuery("Query")

	s, err := b.Build()
	if err != nil {
		t.Fatalf("testSchema build: %v", err)
	}
	return s
}

// testingT is the subset of *testing.T used by the test helpers in this
// package.
type testingT interface {
	Fatalf(format string, args ...interface{})
}

type Widget struct {
	ID     string
	Name   string
	Weight int
}

type Gadget struct {
	ID   string
	Name string
}
