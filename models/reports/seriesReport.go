package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/utils"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

type RevenuePoint struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

type GrowthPoint struct {
	Month      string `json:"month"`
	NewClients int64  `json:"new_clients"`
	Cumulative int64  `json:"cumulative"`
}

type ChurnPoint struct {
	Month   string `json:"month"`
	Churned int64  `json:"churned"`
}

func seriesKey(ctx context.Context, name string, months int) string {
	return fmt.Sprintf("Report:%s:%s:%d", name, monthAnchor(ctx), months)
}

func seriesAttrs(months int) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.Int("months", months)}
}

// bucketIndex returns the bucket holding t, or -1 when t is outside the window.
func bucketIndex(buckets []utils.MonthBucket, t time.Time) int {
	for i, b := range buckets {
		if !t.Before(b.Start) && t.Before(b.Next) {
			return i
		}
	}
	return -1
}

type paidAmount struct {
	PaidAt time.Time
	Amount decimal.Decimal
}

// GetRevenueSeries sums paid payments by paid_at month over the trailing
// months, the current month included, oldest first.
func GetRevenueSeries(ctx context.Context, months int) ([]*RevenuePoint, error) {
	return runReport(ctx, "GetRevenueSeries", seriesKey(ctx, "revenue", months), seriesAttrs(months), func(ctx context.Context) ([]*RevenuePoint, error) {
		buckets := utils.TrailingMonths(utils.Now(ctx), months)
		result := make([]*RevenuePoint, len(buckets))
		totals := make([]decimal.Decimal, len(buckets))
		if len(buckets) == 0 {
			return result, nil
		}

		var rows []paidAmount
		err := configDB(ctx).Model(&models.Payment{}).
			Select("paid_at, amount").
			Where("status = ? AND paid_at >= ? AND paid_at < ?", models.PaymentStatusPaid, buckets[0].Start, buckets[len(buckets)-1].Next).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if i := bucketIndex(buckets, row.PaidAt); i >= 0 {
				totals[i] = totals[i].Add(row.Amount)
			}
		}
		for i, b := range buckets {
			result[i] = &RevenuePoint{Month: b.Label, Revenue: money(totals[i])}
		}
		return result, nil
	})
}

// GetGrowthSeries counts clients created per month. Cumulative restarts at 0
// at the start of the window.
func GetGrowthSeries(ctx context.Context, months int) ([]*GrowthPoint, error) {
	return runReport(ctx, "GetGrowthSeries", seriesKey(ctx, "growth", months), seriesAttrs(months), func(ctx context.Context) ([]*GrowthPoint, error) {
		buckets := utils.TrailingMonths(utils.Now(ctx), months)
		result := make([]*GrowthPoint, len(buckets))
		if len(buckets) == 0 {
			return result, nil
		}

		var created []time.Time
		err := configDB(ctx).Model(&models.ClientOrg{}).
			Where("created_at >= ? AND created_at < ?", buckets[0].Start, buckets[len(buckets)-1].Next).
			Pluck("created_at", &created).Error
		if err != nil {
			return nil, err
		}
		counts := make([]int64, len(buckets))
		for _, at := range created {
			if i := bucketIndex(buckets, at); i >= 0 {
				counts[i]++
			}
		}
		var cumulative int64
		for i, b := range buckets {
			cumulative += counts[i]
			result[i] = &GrowthPoint{Month: b.Label, NewClients: counts[i], Cumulative: cumulative}
		}
		return result, nil
	})
}

// GetChurnSeries counts cancelled subscriptions by cancelled_at month.
func GetChurnSeries(ctx context.Context, months int) ([]*ChurnPoint, error) {
	return runReport(ctx, "GetChurnSeries", seriesKey(ctx, "churn", months), seriesAttrs(months), func(ctx context.Context) ([]*ChurnPoint, error) {
		buckets := utils.TrailingMonths(utils.Now(ctx), months)
		result := make([]*ChurnPoint, len(buckets))
		if len(buckets) == 0 {
			return result, nil
		}

		var cancelled []time.Time
		err := configDB(ctx).Model(&models.Subscription{}).
			Where("status = ? AND cancelled_at >= ? AND cancelled_at < ?", models.SubscriptionStatusCancelled, buckets[0].Start, buckets[len(buckets)-1].Next).
			Pluck("cancelled_at", &cancelled).Error
		if err != nil {
			return nil, err
		}
		counts := make([]int64, len(buckets))
		for _, at := range cancelled {
			if i := bucketIndex(buckets, at); i >= 0 {
				counts[i]++
			}
		}
		for i, b := range buckets {
			result[i] = &ChurnPoint{Month: b.Label, Churned: counts[i]}
		}
		return result, nil
	})
}
