package cloudevents

// CloudEvents extension attribute names (used in events and message headers)
const (
	ExtCorrelationID = "commercecorrelationid"
	ExtOrderRef      = "commerceorderref"
	ExtDocketNumber  = "commercedocketnumber"
	ExtTraceParent   = "traceparent"
	ExtTraceState    = "tracestate"
)

// WithCorrelation sets the correlation id and returns the event
func (e *CommerceCloudEvent) WithCorrelation(correlationID string) *CommerceCloudEvent {
	e.CorrelationID = correlationID
	return e
}

// WithOrderRef sets the order business key extension and returns the event
func (e *CommerceCloudEvent) WithOrderRef(orderRef string) *CommerceCloudEvent {
	e.OrderRef = orderRef
	return e
}

// WithDocketNumber sets the docket number extension and returns the event
func (e *CommerceCloudEvent) WithDocketNumber(docketNumber string) *CommerceCloudEvent {
	e.DocketNumber = docketNumber
	return e
}

// WithTraceContext sets W3C trace context fields and returns the event
func (e *CommerceCloudEvent) WithTraceContext(traceParent, traceState string) *CommerceCloudEvent {
	e.TraceParent = traceParent
	e.TraceState = traceState
	return e
}
