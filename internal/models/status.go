package models

import (
	"encoding/json"
)

// Status labels used on the wire.
const (
	labelUnsettled = "unsettled"
	labelSettled   = "settled"
)

// PaidStatus is the settled/unsettled flag attached to liquidation entries
// and to a content's finished field. The upstream data store is inconsistent
// about its shape: it arrives either as a raw flag (0, 1, "0", "1") or as a
// labeled object ({"key":"1","label":"settled"}). PaidStatus decodes every
// shape and is the single normalization point — internal code only ever
// calls Flag().
type PaidStatus struct {
	// Key is the canonical flag value, "0" or "1".
	Key string `json:"key"`

	// Label is the human-readable form. Populated on marshal; preserved on
	// unmarshal when the labeled shape was received.
	Label string `json:"label"`
}

// PaidFlag builds a normalized PaidStatus from a bool.
func PaidFlag(paid bool) PaidStatus {
	if paid {
		return PaidStatus{Key: "1", Label: labelSettled}
	}
	return PaidStatus{Key: "0", Label: labelUnsettled}
}

// Flag reports whether the status means "paid". Anything other than an
// explicit "1" counts as unpaid, including empty objects and junk values.
func (p PaidStatus) Flag() bool {
	return p.Key == "1"
}

// UnmarshalJSON accepts raw numbers, raw strings, and labeled objects.
// Unrecognized shapes decode to the unpaid default instead of erroring:
// a junk flag is a data-quality problem, not a reason to drop the record.
func (p *PaidStatus) UnmarshalJSON(data []byte) error {
	var obj struct {
		Key   string `json:"key"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*p = PaidStatus{Key: obj.Key, Label: obj.Label}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = PaidFlag(s == "1")
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = PaidFlag(n == 1)
		return nil
	}

	*p = PaidFlag(false)
	return nil
}

// MarshalJSON always emits the labeled-object shape with both fields set.
func (p PaidStatus) MarshalJSON() ([]byte, error) {
	out := PaidFlag(p.Flag())
	return json.Marshal(struct {
		Key   string `json:"key"`
		Label string `json:"label"`
	}{out.Key, out.Label})
}

// String returns the canonical flag value ("0" or "1") for submission
// payloads.
func (p PaidStatus) String() string {
	if p.Flag() {
		return "1"
	}
	return "0"
}
