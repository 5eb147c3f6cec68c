package models

// Status tags an aggregate result as fully computed or degraded.
type Status string

const (
	StatusOK           Status = "ok"
	StatusInsufficient Status = "insufficient"
)

// ResultMeta distinguishes a legitimately empty result from one the
// aggregator could not compute. Degraded results carry a reason and are
// never reported as errors.
type ResultMeta struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// OK marks a fully computed result.
func OK() ResultMeta { return ResultMeta{Status: StatusOK} }

// Insufficient marks a degraded result with the reason it could not be
// computed.
func Insufficient(reason string) ResultMeta {
	return ResultMeta{Status: StatusInsufficient, Reason: reason}
}
