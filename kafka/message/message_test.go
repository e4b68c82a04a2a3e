package message

import (
	"errors"
	"testing"

	"atlas-wizards/kafka/producer"
	kafkaProducer "github.com/Chronicle20/atlas-kafka/producer"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	topics   []string
	messages map[string][]kafka.Message
	err      error
}

func (r *recorder) provider() producer.Provider {
	return func(token string) kafkaProducer.MessageProducer {
		return func(p model.Provider[[]kafka.Message]) error {
			if r.err != nil {
				return r.err
			}
			ms, err := p()
			if err != nil {
				return err
			}
			r.topics = append(r.topics, token)
			r.messages[token] = append(r.messages[token], ms...)
			return nil
		}
	}
}

func newRecorder() *recorder {
	return &recorder{messages: make(map[string][]kafka.Message)}
}

func fixed(values ...string) model.Provider[[]kafka.Message] {
	ms := make([]kafka.Message, 0, len(values))
	for _, v := range values {
		ms = append(ms, kafka.Message{Value: []byte(v)})
	}
	return model.FixedProvider(ms)
}

func TestBuffer_Put(t *testing.T) {
	b := NewBuffer()

	require.NoError(t, b.Put("A", fixed("1")))
	require.NoError(t, b.Put("A", fixed("2")))
	require.NoError(t, b.Put("B", fixed("3")))

	assert.Len(t, b.GetAll()["A"], 2)
	assert.Len(t, b.GetAll()["B"], 1)
}

func TestBuffer_PutProviderError(t *testing.T) {
	b := NewBuffer()
	boom := errors.New("boom")

	err := b.Put("A", func() ([]kafka.Message, error) { return nil, boom })

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, b.GetAll())
}

func TestEmit_ProducesInFirstPutOrder(t *testing.T) {
	r := newRecorder()

	err := Emit(r.provider())(func(buf *Buffer) error {
		_ = buf.Put("B", fixed("1"))
		_ = buf.Put("A", fixed("2"))
		return buf.Put("B", fixed("3"))
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, r.topics)
	assert.Len(t, r.messages["B"], 2)
}

func TestEmit_OperationErrorProducesNothing(t *testing.T) {
	r := newRecorder()
	boom := errors.New("boom")

	err := Emit(r.provider())(func(buf *Buffer) error {
		_ = buf.Put("A", fixed("1"))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, r.topics)
}

func TestEmit_ProducerError(t *testing.T) {
	r := newRecorder()
	r.err = errors.New("kafka unavailable")

	err := Emit(r.provider())(func(buf *Buffer) error {
		return buf.Put("A", fixed("1"))
	})

	assert.ErrorIs(t, err, r.err)
}
