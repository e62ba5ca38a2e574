package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"time"
)

// Transcript holds the schema definition for the Transcript entity. Each
// row records one archived turn; the rendered markdown itself lives in
// object storage under object_key.
type Transcript struct {
	ent.Schema
}

// Fields of the Transcript.
func (Transcript) Fields() []ent.Field {
	return []ent.Field{
		field.Int("id").
			Unique().
			Immutable(),
		field.String("session_id").
			NotEmpty(),
		field.Int("seq").
			Positive(),
		field.String("object_key").
			NotEmpty(),
		field.Time("created_at").
			Default(time.Now),
	}
}

// Edges of the Transcript.
func (Transcript) Edges() []ent.Edge {
	return nil
}

// Indexes of the Transcript.
func (Transcript) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id", "seq").Unique(),
	}
}
