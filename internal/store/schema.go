package store

import (
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/Piyush2510verma/Language/ent/schema"
)

const (
	mistakesTable  = "mistakes"
	llmEventsTable = "llm_request_events"
)

// entity is the part of an ent schema the migrator needs.
type entity interface {
	Fields() []ent.Field
	Indexes() []ent.Index
}

var (
	// MistakesTable holds the schema information for the "mistakes" table.
	// The unique (user_input, mistake_type) index is the conflict target
	// of the upsert.
	MistakesTable = tableOf(mistakesTable, "mistake", entschema.Mistake{})
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = tableOf(llmEventsTable, "llmrequestevent", entschema.LLMRequestEvent{})

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		MistakesTable,
		LlmRequestEventsTable,
	}
)

// tableOf builds the migration table for an ent schema, with an
// auto-increment id in front of its fields. Index names follow ent's
// "<type>_<field>_<field>" convention.
func tableOf(name, prefix string, e entity) *schema.Table {
	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	columns := []*schema.Column{id}
	byName := map[string]*schema.Column{}
	for _, f := range e.Fields() {
		d := f.Descriptor()
		c := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Size:     int64(d.Size),
			Unique:   d.Unique,
			Nullable: d.Optional,
		}
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			c.Default = d.Default
		}
		columns = append(columns, c)
		byName[d.Name] = c
	}

	t := &schema.Table{
		Name:       name,
		Columns:    columns,
		PrimaryKey: []*schema.Column{id},
	}
	for _, i := range e.Indexes() {
		d := i.Descriptor()
		idx := &schema.Index{
			Name:   prefix + "_" + strings.Join(d.Fields, "_"),
			Unique: d.Unique,
		}
		for _, fn := range d.Fields {
			c, ok := byName[fn]
			if !ok {
				panic(fmt.Sprintf("store: index on unknown field %s.%s", name, fn))
			}
			idx.Columns = append(idx.Columns, c)
		}
		t.Indexes = append(t.Indexes, idx)
	}
	return t
}
