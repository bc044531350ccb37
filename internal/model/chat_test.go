package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatMeta_JSONRoundTrip(t *testing.T) {
	in := ChatMeta{Kind: ChatKindSuperGroup, ID: -100, Title: "Engineering", Description: "team chat"}
	data, err := in.MarshalJSON()
	require.NoError(t, err)

	var out ChatMeta
	require.NoError(t, out.UnmarshalJSON(data))
	assert.Equal(t, in, out)
}

func TestChatMeta_DisplayNameLadder(t *testing.T) {
	cases := []struct {
		name string
		c    ChatMeta
		want string
	}{
		{"username wins", ChatMeta{Username: "u", FirstName: "F", LastName: "L", Title: "T", ID: 1}, "u"},
		{"first+last", ChatMeta{FirstName: "F", LastName: "L", Title: "T", ID: 1}, "F L"},
		{"first only", ChatMeta{FirstName: "F", Title: "T", ID: 1}, "F"},
		{"title", ChatMeta{Title: "T", ID: 1}, "T"},
		{"raw id", ChatMeta{ID: 42}, "42"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.c.DisplayName())
		})
	}
}
