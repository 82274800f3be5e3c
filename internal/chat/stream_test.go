package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinical-chat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider replays a scripted chunk sequence.
type fakeProvider struct {
	chunks    []llm.StreamChunk
	openErr   error
	blockOpen bool
	model     string
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeProvider) ChatStream(ctx context.Context, history []llm.Message, options ...llm.Option) (<-chan llm.StreamChunk, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	out := make(chan llm.StreamChunk, llm.StreamBufferSize)
	if f.blockOpen {
		// Never produce, never close. The consumer's deadline must fire.
		return out, nil
	}
	go func() {
		defer close(out)
		for _, c := range f.chunks {
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (f *fakeProvider) ModelName() string {
	if f.model == "" {
		return "test-model"
	}
	return f.model
}

func messageTypes(msgs []interface{}) []string {
	var types []string
	for _, m := range msgs {
		switch v := m.(type) {
		case StreamStartMessage:
			types = append(types, v.Type)
		case TokenMessage:
			types = append(types, v.Type)
		case StreamEndMessage:
			types = append(types, v.Type)
		case ErrorMessage:
			types = append(types, v.Type)
		case StatusMessage:
			types = append(types, v.Type)
		case ConnectedMessage:
			types = append(types, v.Type)
		case CompleteMessage:
			types = append(types, v.Type)
		case PongMessage:
			types = append(types, v.Type)
		}
	}
	return types
}

func TestStreamEmitsTokensInOrder(t *testing.T) {
	provider := &fakeProvider{chunks: []llm.StreamChunk{
		{Content: "El"},
		{Content: " paciente"},
		{Content: " mejora."},
	}}
	gen := NewGenerator(provider, nopLogger{})
	sink := &recorder{}

	full, err := gen.Stream(context.Background(), sink, "¿Cómo está?", "contexto", "s1")
	require.NoError(t, err)
	assert.Equal(t, "El paciente mejora.", full)

	msgs := sink.all()
	assert.Equal(t, []string{
		TypeStreamStart, TypeToken, TypeToken, TypeToken, TypeStreamEnd,
	}, messageTypes(msgs))

	first := msgs[1].(TokenMessage)
	assert.Equal(t, "El", first.Token)
	assert.Equal(t, "s1", first.SessionId)
}

func TestStreamSkipsEmptyChunks(t *testing.T) {
	provider := &fakeProvider{chunks: []llm.StreamChunk{
		{Content: "Hola"},
		{Content: ""},
		{Content: " mundo"},
	}}
	gen := NewGenerator(provider, nopLogger{})
	sink := &recorder{}

	full, err := gen.Stream(context.Background(), sink, "q", "ctx", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Hola mundo", full)
	assert.Equal(t, []string{
		TypeStreamStart, TypeToken, TypeToken, TypeStreamEnd,
	}, messageTypes(sink.all()))
}

func TestStreamTimeoutReportsLLMTimeout(t *testing.T) {
	provider := &fakeProvider{blockOpen: true}
	gen := NewGenerator(provider, nopLogger{})
	sink := &recorder{}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := gen.Stream(ctx, sink, "q", "ctx", "s1")
	require.Error(t, err)

	msgs := sink.all()
	require.NotEmpty(t, msgs)
	last, ok := msgs[len(msgs)-1].(ErrorMessage)
	require.True(t, ok)
	assert.Equal(t, CodeLLMTimeout, last.Error.Code)
	assert.NotContains(t, messageTypes(msgs), TypeStreamEnd)
}

func TestStreamUpstreamErrorReportsLLMError(t *testing.T) {
	provider := &fakeProvider{chunks: []llm.StreamChunk{
		{Content: "parcial"},
		{Err: errors.New("backend exploded")},
	}}
	gen := NewGenerator(provider, nopLogger{})
	sink := &recorder{}

	_, err := gen.Stream(context.Background(), sink, "q", "ctx", "s1")
	require.Error(t, err)

	msgs := sink.all()
	last, ok := msgs[len(msgs)-1].(ErrorMessage)
	require.True(t, ok)
	assert.Equal(t, CodeLLMError, last.Error.Code)
	assert.NotContains(t, messageTypes(msgs), TypeStreamEnd)
}

func TestStreamOpenFailureSkipsStreamStart(t *testing.T) {
	provider := &fakeProvider{openErr: errors.New("connection refused")}
	gen := NewGenerator(provider, nopLogger{})
	sink := &recorder{}

	_, err := gen.Stream(context.Background(), sink, "q", "ctx", "s1")
	require.Error(t, err)

	types := messageTypes(sink.all())
	assert.NotContains(t, types, TypeStreamStart)
	assert.Contains(t, types, TypeError)
}
