package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	entschema "entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ScenarioRun records one finished incident scenario.
type ScenarioRun struct {
	ent.Schema
}

func (ScenarioRun) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable().
			Comment("UUID of the run"),
		field.String("scenario_id"),
		field.String("track"),
		field.Int("score").
			NonNegative(),
		field.Int("max_score").
			NonNegative(),
		field.Int("checks_passed").
			NonNegative(),
		field.Int("checks_total").
			NonNegative(),
		field.Int64("finished_at").
			Immutable().
			Comment("Unix milliseconds, UTC"),
	}
}

func (ScenarioRun) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("finished_at"),
	}
}

func (ScenarioRun) Annotations() []entschema.Annotation {
	return []entschema.Annotation{
		entsql.Annotation{Table: "scenario_runs"},
	}
}
