package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	quizAttemptsTable = "quiz_attempts"
	llmRequestsTable  = "llm_requests"
)

// Columns shared by every history table.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64, Comment: "unix milliseconds"},
	}
}

func newEventTable(name string, extra ...*schema.Column) *schema.Table {
	cols := append(eventColumns(), extra...)
	t := &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
	}
	t.Indexes = []*schema.Index{
		{Name: name + "_sequence", Columns: []*schema.Column{cols[1]}},
		{Name: name + "_timestamp", Columns: []*schema.Column{cols[2]}},
	}
	return t
}

var quizAttemptsSchema = func() *schema.Table {
	t := newEventTable(quizAttemptsTable,
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "quiz_id", Type: field.TypeString},
		&schema.Column{Name: "quiz_title", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "score", Type: field.TypeInt},
		&schema.Column{Name: "correct", Type: field.TypeInt},
		&schema.Column{Name: "total", Type: field.TypeInt},
		&schema.Column{Name: "passed", Type: field.TypeBool},
		&schema.Column{Name: "duration_ms", Type: field.TypeInt64, Default: 0},
	)
	t.Indexes = append(t.Indexes, &schema.Index{
		Name:    "quiz_attempts_quiz_id",
		Columns: []*schema.Column{t.Columns[4]},
	})
	return t
}()

var llmRequestsSchema = func() *schema.Table {
	t := newEventTable(llmRequestsTable,
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 1 << 20, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 1 << 20, Default: ""},
	)
	t.Indexes = append(t.Indexes,
		&schema.Index{Name: "llm_requests_purpose", Columns: []*schema.Column{t.Columns[5]}},
		&schema.Index{Name: "llm_requests_success", Columns: []*schema.Column{t.Columns[9]}},
	)
	return t
}()

// tables is the migration set applied by Open.
var tables = []*schema.Table{quizAttemptsSchema, llmRequestsSchema}
