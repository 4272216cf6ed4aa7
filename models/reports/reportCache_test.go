package reports

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/testutil"
	"github.com/benela/benela_backend/utils"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRedis answers GET and SET from a map and never dials.
type memoryRedis struct {
	mu     sync.Mutex
	values map[string]string
	keys   []string
}

func (m *memoryRedis) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (m *memoryRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (m *memoryRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		args := cmd.Args()
		switch cmd.Name() {
		case "get":
			key := fmt.Sprint(args[1])
			m.keys = append(m.keys, key)
			v, ok := m.values[key]
			if !ok {
				return redis.Nil
			}
			cmd.(*redis.StringCmd).SetVal(v)
		case "set":
			key := fmt.Sprint(args[1])
			m.keys = append(m.keys, key)
			switch v := args[2].(type) {
			case []byte:
				m.values[key] = string(v)
			default:
				m.values[key] = fmt.Sprint(v)
			}
		}
		return nil
	}
}

func withMemoryCache(t *testing.T) *memoryRedis {
	t.Helper()
	t.Setenv("ENABLE_REPORT_CACHE", "true")
	mem := &memoryRedis{values: map[string]string{}}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(mem)
	config.SetRedisDB(client)
	t.Cleanup(func() {
		config.SetRedisDB(nil)
		client.Close()
	})
	return mem
}

func TestSummariesBypassCache(t *testing.T) {
	testutil.NewTestDB(t)
	mem := withMemoryCache(t)
	ctx := utils.FixedClock(context.Background(), time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC))

	testutil.CreateTransaction(t, ctx, models.TransactionTypeIncome, "10")
	first, err := GetFinanceSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10", first.TotalIncome.String())

	testutil.CreateTransaction(t, ctx, models.TransactionTypeIncome, "5")
	second, err := GetFinanceSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "15", second.TotalIncome.String())

	_, err = GetHrSummary(ctx)
	require.NoError(t, err)
	_, err = GetProjectSummary(ctx)
	require.NoError(t, err)
	_, err = GetPlatformSummary(ctx)
	require.NoError(t, err)

	assert.Empty(t, mem.keys)
}

func TestSeriesServedFromCacheUntilExpiry(t *testing.T) {
	testutil.NewTestDB(t)
	mem := withMemoryCache(t)
	ctx := utils.FixedClock(context.Background(), time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC))
	client := testutil.CreateClient(t, ctx, "acme")

	pay := func(amount string) {
		paidAt := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
		_, err := models.CreatePayment(ctx, &models.NewPayment{
			ClientId: client.ID,
			Amount:   testutil.Dec(amount),
			Status:   models.PaymentStatusPaid,
			PaidAt:   &paidAt,
		})
		require.NoError(t, err)
	}

	pay("40")
	first, err := GetRevenueSeries(ctx, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "40", first[1].Revenue.String())

	pay("2")
	cached, err := GetRevenueSeries(ctx, 2)
	require.NoError(t, err)
	require.Len(t, cached, 2)
	assert.Equal(t, "40", cached[1].Revenue.String())

	require.NotEmpty(t, mem.keys)
	for _, key := range mem.keys {
		assert.True(t, strings.HasPrefix(key, "Report:revenue:2026-03:"), key)
	}
}
