package reports

import (
	"context"

	"github.com/benela/benela_backend/config"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func configDB(ctx context.Context) *gorm.DB {
	return config.GetDB().WithContext(ctx)
}

type sumResult struct {
	Total decimal.Decimal
}

// sumWhere returns SUM(column) over the rows matching query, 0 when none match.
func sumWhere(ctx context.Context, model any, column string, query string, args ...any) (decimal.Decimal, error) {
	var res sumResult
	dbCtx := configDB(ctx).Model(model).Select("COALESCE(SUM(" + column + "), 0) AS total")
	if query != "" {
		dbCtx = dbCtx.Where(query, args...)
	}
	if err := dbCtx.Scan(&res).Error; err != nil {
		return decimal.Zero, err
	}
	return res.Total, nil
}

func countWhere(ctx context.Context, model any, query string, args ...any) (int64, error) {
	var count int64
	dbCtx := configDB(ctx).Model(model)
	if query != "" {
		dbCtx = dbCtx.Where(query, args...)
	}
	if err := dbCtx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// money rounds to cents for presentation.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
