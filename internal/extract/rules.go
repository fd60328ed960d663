package extract

import (
	"regexp"
	"strconv"

	"finmitra-backend/internal/models"
)

// Result is what an extractor returns for one message: the validated partial
// slot set and the fields it found, in schema order.
type Result struct {
	Extracted   models.SlotSet
	FieldsFound []models.FieldID
}

// rule is one ordered extraction pattern for a field. The first rule whose
// pattern matches and whose converted value validates wins for that field.
type rule struct {
	re   *regexp.Regexp
	conv func(m []string) (models.SlotValue, bool)
}

// amountConv converts the (digits, unit) capture pair of amountPat.
func amountConv(m []string) (models.SlotValue, bool) {
	n, ok := parseNumberToken(m[1], m[2])
	if !ok {
		return models.SlotValue{}, false
	}
	return models.NumberValue(n), true
}

// intConv converts a single integer capture, optionally scaled.
func intConv(scale float64) func(m []string) (models.SlotValue, bool) {
	return func(m []string) (models.SlotValue, bool) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return models.SlotValue{}, false
		}
		return models.NumberValue(float64(n) * scale), true
	}
}

// constConv ignores captures and yields a fixed value ("no loans" -> 0).
func constConv(v models.SlotValue) func(m []string) (models.SlotValue, bool) {
	return func([]string) (models.SlotValue, bool) { return v, true }
}

// runTables evaluates the rule tables in schema field order. A field already
// present in existing is still re-derivable, but only by a value that itself
// validates; an invalid match never weakens a stored slot.
func runTables(text string, existing models.SlotSet, order []models.FieldID, tables map[models.FieldID][]rule) Result {
	out := models.SlotSet{}
	var found []models.FieldID
	for _, id := range order {
		for _, r := range tables[id] {
			m := r.re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			v, ok := r.conv(m)
			if !ok || Validate(id, v) != nil {
				continue
			}
			out[id] = v
			found = append(found, id)
			break
		}
	}
	_ = existing
	return Result{Extracted: out, FieldsFound: found}
}

// Rule tables for fields shared by both schemas.

var creditScoreRules = []rule{
	{regexp.MustCompile(`(?i)(?:cibil|credit)(?:\s+score)?\s*(?:is|of|:|=)?\s*([0-9]{3})\b`), intConv(1)},
	{regexp.MustCompile(`(?i)\b([0-9]{3})\s+(?:cibil|credit\s*score)`), intConv(1)},
	{regexp.MustCompile(`(?i)\bscore\s*(?:is|of|:|=)?\s*([0-9]{3})\b`), intConv(1)},
}

var incomeRules = []rule{
	{regexp.MustCompile(`(?i)(?:income|salary|take[- ]home|earnings?)[^0-9₹]{0,24}?` + amountPat), amountConv},
	{regexp.MustCompile(`(?i)(?:i\s+)?(?:make|earn|get\s+paid)\s+(?:about\s+|around\s+)?` + amountPat), amountConv},
	{regexp.MustCompile(`(?i)` + amountPat + `\s*(?:per\s+month|a\s+month|monthly|/month|pm)\s+(?:income|salary)`), amountConv},
}
