package transmit

// Reporter receives the progress of a run, in order: Start once, Sending
// once per transmitted line, then Complete; or Failed once instead of the
// remaining events.
type Reporter interface {
	Start(total int)
	Sending(line string)
	Complete()
	Failed(err error)
}

type discardReporter struct{}

func (discardReporter) Start(int)      {}
func (discardReporter) Sending(string) {}
func (discardReporter) Complete()      {}
func (discardReporter) Failed(error)   {}
