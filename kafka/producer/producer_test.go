package producer

import (
	"context"
	"testing"

	"github.com/Chronicle20/atlas-tenant"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tenantContext(t *testing.T) (context.Context, uuid.UUID) {
	tenantId := uuid.New()
	tm, err := tenant.Create(tenantId, "test-region", 1, 0)
	require.NoError(t, err)
	return tenant.WithContext(context.Background(), tm), tenantId
}

func TestProviderImpl_CurriedFunctionStructure(t *testing.T) {
	ctx, _ := tenantContext(t)

	contextFunc := ProviderImpl(logrus.New())(ctx)
	require.NotNil(t, contextFunc)
	assert.NotNil(t, contextFunc("EVENT_TOPIC_WIZARD_STATUS"))
}

func TestLookupBrokers(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "unset", value: "", want: []string{}},
		{name: "single", value: "kafka:9092", want: []string{"kafka:9092"}},
		{name: "list with blanks", value: "a:9092, ,b:9092 ", want: []string{"a:9092", "b:9092"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvBootstrapServers, tt.value)
			assert.Equal(t, tt.want, LookupBrokers())
		})
	}
}

func TestDecorateHeaders_CarriesTenant(t *testing.T) {
	ctx, tenantId := tenantContext(t)

	hs := decorateHeaders(ctx)

	require.NotEmpty(t, hs)
	assert.Equal(t, HeaderTenantId, hs[0].Key)
	assert.Equal(t, tenantId.String(), string(hs[0].Value))
}
