package database

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	instrumentationName = "internal/pkg/database/tracing"
	spanKey             = "tracing:span"
)

// GormTracingPlugin 给所有 GORM 操作挂上 OpenTelemetry span
type GormTracingPlugin struct {
	tracer trace.Tracer
}

func NewGormTracingPlugin() *GormTracingPlugin {
	return &GormTracingPlugin{
		tracer: otel.GetTracerProvider().Tracer(instrumentationName),
	}
}

func (p *GormTracingPlugin) Name() string {
	return "GormTracingPlugin"
}

func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	return errors.Join(
		db.Callback().Query().Before("gorm:query").Register("tracing:before_query", p.before("SELECT")),
		db.Callback().Query().After("gorm:query").Register("tracing:after_query", p.after("SELECT")),
		db.Callback().Create().Before("gorm:create").Register("tracing:before_create", p.before("INSERT")),
		db.Callback().Create().After("gorm:create").Register("tracing:after_create", p.after("INSERT")),
		db.Callback().Update().Before("gorm:update").Register("tracing:before_update", p.before("UPDATE")),
		db.Callback().Update().After("gorm:update").Register("tracing:after_update", p.after("UPDATE")),
		db.Callback().Delete().Before("gorm:delete").Register("tracing:before_delete", p.before("DELETE")),
		db.Callback().Delete().After("gorm:delete").Register("tracing:after_delete", p.after("DELETE")),
		db.Callback().Raw().Before("gorm:raw").Register("tracing:before_raw", p.before("RAW")),
		db.Callback().Raw().After("gorm:raw").Register("tracing:after_raw", p.after("RAW")),
	)
}

func (p *GormTracingPlugin) before(op string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		ctx := context.Background()
		if db.Statement != nil {
			ctx = db.Statement.Context
		}
		spanName := op
		if db.Statement.Table != "" {
			spanName = fmt.Sprintf("%s %s", db.Statement.Table, op)
		}
		ctx, span := p.tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
		db.Statement.Context = ctx
		db.Set(spanKey, span)
	}
}

func (p *GormTracingPlugin) after(op string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		val, ok := db.Get(spanKey)
		if !ok {
			return
		}
		span, ok := val.(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		attributes := []attribute.KeyValue{
			attribute.String("db.system", "mysql"),
			attribute.String("db.operation", op),
		}
		table := db.Statement.Table
		if db.Statement.Schema != nil {
			table = db.Statement.Schema.Table
		}
		if table != "" {
			attributes = append(attributes, attribute.String("db.table", table))
		}
		if sql := db.Statement.SQL.String(); sql != "" {
			attributes = append(attributes, attribute.String("db.statement", sql))
		}
		if db.Statement.RowsAffected > 0 {
			attributes = append(attributes, attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
		}
		span.SetAttributes(attributes...)

		// 查不到数据是正常的业务分支, 不算错误
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, db.Error.Error())
			return
		}
		span.SetStatus(codes.Ok, "")
	}
}
