package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// KVEntry is one named value in the durable key/value table. The quiz
// history lives under a single key as a JSON array.
type KVEntry struct {
	ent.Schema
}

func (KVEntry) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "kv_entries"},
	}
}

func (KVEntry) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").
			NotEmpty().
			Unique().
			Immutable().
			Comment("Key, e.g. quizHistory"),
		field.Text("value").
			Comment("Stored value; replaced whole on every write"),
		field.Int64("updated_at").
			Comment("Unix milliseconds of the last write"),
	}
}
