package store

import (
	"testing"

	"entgo.io/ent/schema/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesFollowEntSchema(t *testing.T) {
	var names []string
	for _, c := range MistakesTable.Columns {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"id", "user_input", "mistake_type", "correct_answer", "frequency", "timestamp"}, names)
	assert.Equal(t, field.TypeInt, MistakesTable.Columns[4].Type)
	assert.Equal(t, 1, MistakesTable.Columns[4].Default)
	assert.Nil(t, MistakesTable.Columns[5].Default, "func defaults stay in Go")

	require.Len(t, MistakesTable.Indexes, 2)
	conflict := MistakesTable.Indexes[0]
	assert.Equal(t, "mistake_user_input_mistake_type", conflict.Name)
	assert.True(t, conflict.Unique)
	require.Len(t, conflict.Columns, 2)
	assert.Equal(t, "user_input", conflict.Columns[0].Name)
	assert.Equal(t, "mistake_type", conflict.Columns[1].Name)

	names = names[:0]
	for _, c := range LlmRequestEventsTable.Columns {
		names = append(names, c.Name)
	}
	assert.Equal(t, llmEventColumns, names)
}

func TestMigratedUniqueIndex(t *testing.T) {
	s := openTestStore(t)

	rows, err := s.DB().Query(`SELECT name, "unique" FROM pragma_index_list('mistakes')`)
	require.NoError(t, err)
	defer rows.Close()

	unique := map[string]bool{}
	for rows.Next() {
		var name string
		var u int
		require.NoError(t, rows.Scan(&name, &u))
		unique[name] = u == 1
	}
	require.NoError(t, rows.Err())
	assert.True(t, unique["mistake_user_input_mistake_type"])
	assert.Contains(t, unique, "mistake_frequency")
	assert.False(t, unique["mistake_frequency"])

	_, err = s.DB().Exec(`INSERT INTO mistakes (user_input, mistake_type, correct_answer, frequency, timestamp)
		VALUES ('a', 'Grammar', 'b', 1, CURRENT_TIMESTAMP), ('a', 'Grammar', 'c', 1, CURRENT_TIMESTAMP)`)
	assert.Error(t, err, "duplicate (user_input, mistake_type) must be rejected")
}
