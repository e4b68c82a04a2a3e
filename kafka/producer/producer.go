package producer

import (
	"context"
	"os"
	"strings"
	"time"

	"atlas-wizards/retry"
	"github.com/Chronicle20/atlas-kafka/producer"
	"github.com/Chronicle20/atlas-kafka/topic"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/Chronicle20/atlas-tenant"
	"github.com/opentracing/opentracing-go"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	EnvBootstrapServers = "BOOTSTRAP_SERVERS"
	HeaderTenantId      = "TENANT_ID"
)

// Provider resolves a topic token (the name of the environment variable
// holding the topic) to a producer for that topic.
type Provider func(token string) producer.MessageProducer

// LookupBrokers returns the configured brokers. An empty result means events
// are disabled.
func LookupBrokers() []string {
	brokers := make([]string, 0)
	for _, b := range strings.Split(os.Getenv(EnvBootstrapServers), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func ProviderImpl(l logrus.FieldLogger) func(ctx context.Context) Provider {
	return func(ctx context.Context) Provider {
		return func(token string) producer.MessageProducer {
			return func(provider model.Provider[[]kafka.Message]) error {
				ms, err := provider()
				if err != nil {
					return err
				}
				t, err := topic.EnvProvider(l)(token)()
				if err != nil {
					return err
				}

				headers := decorateHeaders(ctx)
				for i := range ms {
					ms[i].Headers = append(ms[i].Headers, headers...)
				}

				w := &kafka.Writer{
					Addr:                   kafka.TCP(LookupBrokers()...),
					Topic:                  t,
					Balancer:               &kafka.LeastBytes{},
					AllowAutoTopicCreation: true,
				}
				defer func() {
					if cerr := w.Close(); cerr != nil {
						l.WithError(cerr).Warn("Unable to close kafka writer.")
					}
				}()

				rc := retry.DefaultConfig().
					WithLogger(l.WithField("topic", t)).
					WithContext(ctx).
					WithInitialDelay(250 * time.Millisecond)
				return retry.ExecuteWithRetry(rc, func() error {
					return w.WriteMessages(ctx, ms...)
				})
			}
		}
	}
}

// decorateHeaders carries the tenant and the active span, when present.
func decorateHeaders(ctx context.Context) []kafka.Header {
	t := tenant.MustFromContext(ctx)
	hs := []kafka.Header{{Key: HeaderTenantId, Value: []byte(t.Id().String())}}

	if span := opentracing.SpanFromContext(ctx); span != nil {
		c := headerCarrier{}
		if err := opentracing.GlobalTracer().Inject(span.Context(), opentracing.TextMap, c); err == nil {
			for k, v := range c {
				hs = append(hs, kafka.Header{Key: k, Value: []byte(v)})
			}
		}
	}
	return hs
}

type headerCarrier map[string]string

func (c headerCarrier) Set(key, val string) {
	c[key] = val
}
