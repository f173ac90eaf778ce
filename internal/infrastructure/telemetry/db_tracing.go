package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds database tracing settings
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include bound variables; never in production
	SlowQueryThresh time.Duration
	DBName          string
}

type queryStartKey struct{}

// RegisterDBTracing installs otelgorm on db plus callbacks that tag each
// query span with its table and affected rows, and mark slow queries. The
// tagging callbacks run before otelgorm ends the span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { annotateQuerySpan(tx, cfg.SlowQueryThresh) }

	cb := db.Callback()
	if err := errors.Join(
		cb.Create().Before("gorm:create").Register("lawai_timing:before_create", before),
		cb.Create().After("gorm:create").Before("otel:after_create").Register("lawai_timing:after_create", after),
		cb.Query().Before("gorm:query").Register("lawai_timing:before_query", before),
		cb.Query().After("gorm:query").Before("otel:after_query").Register("lawai_timing:after_query", after),
		cb.Update().Before("gorm:update").Register("lawai_timing:before_update", before),
		cb.Update().After("gorm:update").Before("otel:after_update").Register("lawai_timing:after_update", after),
		cb.Delete().Before("gorm:delete").Register("lawai_timing:before_delete", before),
		cb.Delete().After("gorm:delete").Before("otel:after_delete").Register("lawai_timing:after_delete", after),
		cb.Row().Before("gorm:row").Register("lawai_timing:before_row", before),
		cb.Row().After("gorm:row").Before("otel:after_row").Register("lawai_timing:after_row", after),
		cb.Raw().Before("gorm:raw").Register("lawai_timing:before_raw", before),
		cb.Raw().After("gorm:raw").Before("otel:after_raw").Register("lawai_timing:after_raw", after),
	); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

func annotateQuerySpan(tx *gorm.DB, slow time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, tx.Error.Error())
		span.RecordError(tx.Error)
	}
	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > slow {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
