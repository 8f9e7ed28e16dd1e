package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchBody struct {
	Title       Optional[string]  `json:"title"`
	CategoryIDs Optional[[]int64] `json:"category_ids"`
}

func TestOptional_UnmarshalStates(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		titleSet    bool
		titleNull   bool
		title       string
		idsSet      bool
		idsNull     bool
		ids         []int64
		wantIDsOkay bool
	}{
		{
			name: "absent fields",
			body: `{}`,
		},
		{
			name:      "explicit null",
			body:      `{"title": null, "category_ids": null}`,
			titleSet:  true,
			titleNull: true,
			idsSet:    true,
			idsNull:   true,
		},
		{
			name:        "values",
			body:        `{"title": "Dune", "category_ids": [3, 1]}`,
			titleSet:    true,
			title:       "Dune",
			idsSet:      true,
			ids:         []int64{3, 1},
			wantIDsOkay: true,
		},
		{
			name:        "empty list is a value",
			body:        `{"category_ids": []}`,
			idsSet:      true,
			ids:         []int64{},
			wantIDsOkay: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p patchBody
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			assert.Equal(t, tt.titleSet, p.Title.IsSet())
			assert.Equal(t, tt.titleNull, p.Title.IsNull())
			title, _ := p.Title.Get()
			assert.Equal(t, tt.title, title)

			assert.Equal(t, tt.idsSet, p.CategoryIDs.IsSet())
			assert.Equal(t, tt.idsNull, p.CategoryIDs.IsNull())
			ids, ok := p.CategoryIDs.Get()
			assert.Equal(t, tt.wantIDsOkay, ok)
			if ok {
				assert.Equal(t, tt.ids, ids)
			}
		})
	}
}

func TestOptional_Constructors(t *testing.T) {
	some := Some(42)
	v, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.False(t, some.IsAbsent())

	null := Null[int]()
	assert.True(t, null.IsSet())
	assert.True(t, null.IsNull())

	var absent Optional[int]
	assert.True(t, absent.IsAbsent())
	assert.False(t, absent.IsNull())
}

func TestOptional_BadValue(t *testing.T) {
	var p patchBody
	err := json.Unmarshal([]byte(`{"title": 12}`), &p)
	assert.Error(t, err)
}

func TestOptional_Marshal(t *testing.T) {
	out, err := json.Marshal(patchBody{Title: Some("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"x","category_ids":null}`, string(out))
}

func TestOptional_OmitZeroRoundTrip(t *testing.T) {
	type wire struct {
		Title       Optional[string]  `json:"title,omitzero"`
		Description Optional[string]  `json:"description,omitzero"`
		CategoryIDs Optional[[]int64] `json:"category_ids,omitzero"`
	}

	in := wire{Title: Some("x"), Description: Null[string]()}
	out, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"x","description":null}`, string(out))

	var back wire
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, in, back)
	assert.True(t, back.Description.IsNull())
	assert.True(t, back.CategoryIDs.IsAbsent())
}
