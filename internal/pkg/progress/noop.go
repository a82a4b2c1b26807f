package progress

// NoopProgress ничего не отображает.
type NoopProgress struct{}

// NewNoOp создаёт NoopProgress.
func NewNoOp() Progress {
	return &NoopProgress{}
}

func (p *NoopProgress) Start(_ int64) {}

func (p *NoopProgress) Update(_ int64) {}

func (p *NoopProgress) Finish() {}
