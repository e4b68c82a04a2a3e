package message

import (
	"atlas-wizards/kafka/producer"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/segmentio/kafka-go"
)

// Buffer collects messages per topic token so an operation can emit them
// together once it has finished.
type Buffer struct {
	buffer map[string][]kafka.Message
	order  []string
}

func NewBuffer() *Buffer {
	return &Buffer{
		buffer: make(map[string][]kafka.Message),
		order:  make([]string, 0),
	}
}

func (b *Buffer) Put(t string, p model.Provider[[]kafka.Message]) error {
	ms, err := p()
	if err != nil {
		return err
	}
	if _, ok := b.buffer[t]; !ok {
		b.order = append(b.order, t)
	}
	b.buffer[t] = append(b.buffer[t], ms...)
	return nil
}

func (b *Buffer) GetAll() map[string][]kafka.Message {
	return b.buffer
}

// Emit runs f against a fresh buffer and, if f succeeds, produces the buffered
// messages topic by topic in first-put order.
func Emit(p producer.Provider) func(f func(buf *Buffer) error) error {
	return func(f func(buf *Buffer) error) error {
		b := NewBuffer()
		if err := f(b); err != nil {
			return err
		}
		for _, t := range b.order {
			if err := p(t)(model.FixedProvider(b.buffer[t])); err != nil {
				return err
			}
		}
		return nil
	}
}
