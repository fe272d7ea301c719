package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vk/attrflow/internal/builder"
	"github.com/vk/attrflow/internal/ctxlog"
	"github.com/vk/attrflow/internal/dataflow"
	"github.com/vk/attrflow/internal/metrics"
)

// Run builds the attribute type, creates one instance, and executes the
// configured operation script in order.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("app run started")

	var hooks dataflow.Hooks
	if a.config.MetricsPort > 0 {
		promReg := prometheus.NewRegistry()
		collector := metrics.New(promReg)
		hooks = hooks.Merge(collector.Hooks())
		a.startMetricsServer(promReg, a.config.MetricsPort)
	}

	typ, err := builder.Build(ctx, a.model, a.registry)
	if err != nil {
		return fmt.Errorf("failed to build attribute type: %w", err)
	}
	a.logger.Debug("attribute type built", "attributes", len(typ.Attributes()))

	instance := typ.NewInstance(dataflow.WithHooks(hooks))

	if len(a.config.Ops) == 0 {
		a.logger.Warn("no operations requested, nothing to do")
		return nil
	}

	for _, op := range a.config.Ops {
		switch op.Kind {
		case OpSet:
			val, err := parseValue(op.RawValue)
			if err != nil {
				return err
			}
			if err := instance.Set(ctx, op.Attribute, val); err != nil {
				return err
			}
			a.logger.Info("attribute set", "attribute", op.Attribute, "value", formatValue(val))

		case OpGet:
			val, err := instance.Get(ctx, op.Attribute)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.outW, "%s = %s\n", op.Attribute, formatValue(val))
		}
	}

	a.logger.Debug("app run finished")
	return nil
}
