package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	entschema "entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// Document is one keyed JSON document: the app state or the flashcard map.
type Document struct {
	ent.Schema
}

func (Document) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("key").
			NotEmpty().
			Immutable().
			Comment("Fixed document key, e.g. secjobcoach:v1"),
		field.Text("value").
			Comment("Whole document as JSON"),
		field.Int64("updated_at").
			Comment("Unix milliseconds of the last write"),
	}
}

func (Document) Annotations() []entschema.Annotation {
	return []entschema.Annotation{
		entsql.Annotation{Table: "documents"},
	}
}
