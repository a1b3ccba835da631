package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONBlock(t *testing.T) {
	const body = `{"name": "Drill", "quantity": 2}`
	tests := []struct {
		name  string
		reply string
	}{
		{name: "bare", reply: body},
		{name: "bare with whitespace", reply: "\n  " + body + "  \n"},
		{name: "json fence", reply: "```json\n" + body + "\n```"},
		{name: "plain fence", reply: "```\n" + body + "\n```"},
		{name: "fence with prose", reply: "Here is the item:\n```json\n" + body + "\n```\nLet me know!"},
		{name: "inline fence", reply: "```json " + body + "```"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, body, ExtractJSONBlock(tt.reply))
		})
	}
}

func TestExtractJSONBlock_FirstBlockWins(t *testing.T) {
	reply := "```json\n{\"a\":1}\n```\n```json\n{\"b\":2}\n```"
	assert.Equal(t, `{"a":1}`, ExtractJSONBlock(reply))
}
