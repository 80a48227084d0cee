package grok

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompletion(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		texts []string
	}{
		{name: "empty choices", body: `{"choices":[]}`, texts: []string{}},
		{name: "missing choices", body: `{"id":"x"}`, texts: []string{}},
		{name: "null choices", body: `{"choices":null}`, texts: []string{}},
		{
			name:  "empty and filled",
			body:  `{"choices":[{"message":{"content":""}},{"message":{"content":"hello world"}}]}`,
			texts: []string{"", "hello world"},
		},
		{
			name:  "null content and missing message",
			body:  `{"choices":[{"message":{"content":null}},{}]}`,
			texts: []string{"", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp, err := ParseCompletion([]byte(tt.body))
			require.NoError(t, err)

			texts := make([]string, 0, len(comp.Candidates))
			for _, c := range comp.Candidates {
				texts = append(texts, c.Text)
			}
			assert.Equal(t, tt.texts, texts)
		})
	}
}

func TestParseCompletion_IndexFallsBackToPosition(t *testing.T) {
	comp, err := ParseCompletion([]byte(`{"choices":[{"index":3,"message":{"content":"a"}},{"message":{"content":"b"}}]}`))
	require.NoError(t, err)

	assert.Equal(t, 3, comp.Candidates[0].Index)
	assert.Equal(t, 1, comp.Candidates[1].Index)
}

func TestParseCompletion_NotJSON(t *testing.T) {
	_, err := ParseCompletion([]byte("<html>502</html>"))

	var re *ResponseError
	require.True(t, errors.As(err, &re))
	assert.Empty(t, re.APIMessage)
	assert.ErrorContains(t, err, "decode response")
}

func TestParseCompletion_NotAnObject(t *testing.T) {
	for _, body := range []string{"null", " null\n", "[]", `"choices"`, "42", ""} {
		_, err := ParseCompletion([]byte(body))

		var re *ResponseError
		require.True(t, errors.As(err, &re), "body %q", body)
		assert.Empty(t, re.APIMessage)
		assert.ErrorIs(t, err, errNotObject)
	}
}

func TestParseCompletion_WrongShapeWithAPIError(t *testing.T) {
	_, err := ParseCompletion([]byte(`{"choices":"nope","error":{"message":"model not found"}}`))

	var re *ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "model not found", re.APIMessage)
	assert.EqualError(t, err, "api error: model not found")
}

func TestParseCompletion_ErrorWithoutChoices(t *testing.T) {
	_, err := ParseCompletion([]byte(`{"error":"quota exceeded"}`))

	var re *ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "quota exceeded", re.APIMessage)
	assert.ErrorIs(t, err, errNoChoices)
}

func TestParseCompletion_BadChoice(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{name: "string choice", body: `{"choices":[{"message":{"content":"ok"}},"oops"]}`},
		{name: "null choice", body: `{"choices":[{"message":{"content":"ok"}},null]}`, err: errNullChoice},
		{name: "null message", body: `{"choices":[{"message":{"content":"ok"}},{"message":null}]}`, err: errNullMsg},
		{name: "string message", body: `{"choices":[{"message":{"content":"ok"}},{"message":"hi"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCompletion([]byte(tt.body))

			var ce *ChoiceError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, 1, ce.Position)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestParseCompletion_NonStringContent(t *testing.T) {
	_, err := ParseCompletion([]byte(`{"choices":[{"message":{"content":42}}]}`))

	var ce *ChoiceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 0, ce.Position)
}

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		body string
		want string
		ok   bool
	}{
		{`{"error":{"message":"bad key"}}`, "bad key", true},
		{`{"error":"plain"}`, "plain", true},
		{`{"error":{"code":1}}`, "", false},
		{`{"error":null}`, "", false},
		{`{"error":"   "}`, "", false},
		{`{}`, "", false},
		{`[1,2]`, "", false},
		{`garbage`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got, ok := APIErrorMessage([]byte(tt.body))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
