package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// LLMEvent records every LLM API call made by the chat backend for cost
// tracking and debugging.
type LLMEvent struct {
	ent.Schema
}

func (LLMEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "llm_events"},
	}
}

func (LLMEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LLMEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider").
			Default("").
			Comment("Provider name: anthropic, openai, gemini, openrouter, mock"),
		field.String("model").
			Default("").
			Comment("Actual model ID used"),
		field.String("purpose").
			Default("").
			Comment("Consumer-provided label, e.g. chat"),
		field.Int("input_tokens").
			Default(0).
			Comment("Tokens in the request"),
		field.Int("output_tokens").
			Default(0).
			Comment("Tokens in the response"),
		field.Int64("latency_ms").
			Default(0).
			Comment("Wall-clock time for the request"),
		field.Bool("success").
			Default(false).
			Comment("Whether the request succeeded"),
		field.String("error_message").
			Default("").
			Comment("Error message if failed"),
		field.Text("request_body").
			Default("").
			Comment("Serialized request sent to the provider"),
		field.Text("response_body").
			Default("").
			Comment("Raw provider response"),
	}
}
