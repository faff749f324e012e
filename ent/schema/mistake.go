package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Mistake is one recorded correction. A repeated (user_input, mistake_type)
// pair bumps frequency instead of adding a row.
type Mistake struct {
	ent.Schema
}

func (Mistake) Fields() []ent.Field {
	return []ent.Field{
		field.Text("user_input").
			Comment("The learner's message as sent"),
		field.String("mistake_type").
			Comment("Category reported by the classifier"),
		field.Text("correct_answer").
			Comment("Corrected sentence, replaced on every repeat"),
		field.Int("frequency").
			Default(1),
		field.Time("timestamp").
			Default(time.Now).
			Comment("Time of the latest occurrence"),
	}
}

func (Mistake) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_input", "mistake_type").
			Unique(),
		index.Fields("frequency"),
	}
}
