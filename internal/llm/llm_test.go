package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstText(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{name: "text block", body: `{"content":[{"type":"text","text":"hello"}]}`, want: "hello"},
		{name: "takes first block", body: `{"content":[{"type":"text","text":"a"},{"type":"text","text":"b"}]}`, want: "a"},
		{name: "missing content", body: `{"id":"msg_1"}`, wantErr: ErrEmptyContent},
		{name: "empty content", body: `{"content":[]}`, wantErr: ErrEmptyContent},
		{name: "first block without text", body: `{"content":[{"type":"tool_use"}]}`, wantErr: ErrEmptyContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FirstText([]byte(tt.body))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstTextMalformed(t *testing.T) {
	_, err := FirstText([]byte("not json"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyContent))
}

func TestCompleterFunc(t *testing.T) {
	var c Completer = CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "echo:" + prompt, nil
	})
	out, err := c.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo:hi", out)
}

func TestPlaceholderCompleter(t *testing.T) {
	_, err := PlaceholderCompleter{}.Complete(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestMeteredPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	c := Metered(CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		if prompt == "fail" {
			return "", boom
		}
		return "ok", nil
	}))
	out, err := c.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	_, err = c.Complete(context.Background(), "fail")
	assert.ErrorIs(t, err, boom)
}
