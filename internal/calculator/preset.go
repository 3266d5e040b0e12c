package calculator

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// PresetRule assigns a default percentage to one member.
type PresetRule struct {
	MemberID int64
	Percent  int64
}

// PresetRules is a category's default split, as an explicitly ordered
// sequence: the Preset Resolver depends on the order rules appear in the
// stored JSON object, so the order is part of the contract rather than an
// accident of map iteration.
type PresetRules []PresetRule

// Percent returns the percentage for the given member, or 0 if the member
// has no rule.
func (r PresetRules) Percent(memberID int64) int64 {
	for _, rule := range r {
		if rule.MemberID == memberID {
			return rule.Percent
		}
	}
	return 0
}

// ParsePresetRules parses a category's opaque preset payload, preserving
// the key order of the JSON object. An empty payload parses to empty rules.
// A malformed payload returns ok=false: bad preset data is a recoverable
// data-quality issue and degrades to "no preset" at the caller, never an
// error. Pairs whose key is not an integer member id or whose value is not
// a number (or numeric string) are dropped.
func ParsePresetRules(payload string) (rules PresetRules, ok bool) {
	if strings.TrimSpace(payload) == "" {
		return PresetRules{}, true
	}

	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, isDelim := tok.(json.Delim); !isDelim || delim != '{' {
		return nil, false
	}

	rules = PresetRules{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, _ := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}

		memberID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		percent, valid := toPercent(value)
		if !valid {
			continue
		}
		rules = append(rules, PresetRule{MemberID: memberID, Percent: percent})
	}

	// Closing brace; trailing garbage after it invalidates the payload.
	if _, err := dec.Token(); err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}
	return rules, true
}

func toPercent(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return 0, false
		}
		return d.IntPart(), true
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return 0, false
		}
		return d.IntPart(), true
	}
	return 0, false
}

// ResolvePreset turns a category's preset rules plus a chosen creditor into
// an initial split table.
//
// The creditor always occupies the first entry, forced paid, with its rate
// taken from the rules (0 when absent). The remaining rules follow in
// order, unpaid, until the table reaches MaxLiquidators — extra preset
// members are silently dropped. Payments are filled in only when both the
// rate and the amount are valid decimals.
func ResolvePreset(rules PresetRules, creditorID int64, amount string) SplitTable {
	creditorRate := rules.Percent(creditorID)
	entries := []Entry{{
		Payer:   creditorID,
		Rate:    strconv.FormatInt(creditorRate, 10),
		Payment: presetPayment(creditorRate, amount),
		Paid:    true,
	}}

	for _, rule := range rules {
		if rule.MemberID == creditorID {
			continue
		}
		if len(entries) >= MaxLiquidators {
			break
		}
		entries = append(entries, Entry{
			Payer:   rule.MemberID,
			Rate:    strconv.FormatInt(rule.Percent, 10),
			Payment: presetPayment(rule.Percent, amount),
			Paid:    false,
		})
	}
	return SplitTable{entries: entries}
}

// presetPayment mirrors ratePayment for integer preset percentages, with
// the extra rule that a zero rate or a missing/zero amount yields an empty
// payment rather than "0".
func presetPayment(percent int64, amount string) string {
	if percent == 0 {
		return ""
	}
	a, err := decimal.NewFromString(amount)
	if err != nil || a.IsZero() {
		return ""
	}
	payment, ok := ratePayment(strconv.FormatInt(percent, 10), amount)
	if !ok {
		return ""
	}
	return payment
}
