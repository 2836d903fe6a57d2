package trace

import "go.uber.org/zap"

// ZapObserver forwards events to a structured zap logger at debug level.
type ZapObserver struct {
	logger *zap.Logger
}

func NewZapObserver(logger *zap.Logger) ZapObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return ZapObserver{logger: logger}
}

func (o ZapObserver) Observe(event Event) {
	o.logger.Debug("evaluation event",
		zap.String("stage", event.Stage),
		zap.String("factor", event.Factor),
		zap.String("shape", event.Shape),
		zap.Any("value", event.Value),
		zap.Float64("fitness", event.Fitness),
		zap.String("detail", event.Detail),
	)
}
