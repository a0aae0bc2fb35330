package k4

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/k4tool/internal/logging"
)

// Classification is the result of Header.Identify
type Classification struct {
	Cardinality Cardinality `json:"cardinality"`
	Kind        Kind        `json:"kind"`
	Locality    Locality    `json:"locality"`
	PatchNumber *int        `json:"patch_number"` // nil for block dumps and unrecognised headers
}

func defaultClassification() Classification {
	return Classification{
		Cardinality: CardinalityOne,
		Kind:        KindSingle,
		Locality:    LocalityInternal,
	}
}

func (c *Classification) setPatch(n byte) {
	v := int(n)
	c.PatchNumber = &v
}

// IsBlock reports whether the message carries a whole bank
func (c Classification) IsBlock() bool {
	return c.Cardinality == CardinalityBlock
}

// String returns the identification line, e.g. "One / Single / INT 5"
// or "Block / All / EXT".
func (c Classification) String() string {
	s := fmt.Sprintf("%s / %s / %s", c.Cardinality, c.Kind, c.Locality)
	if c.PatchNumber != nil {
		s += fmt.Sprintf(" %d", *c.PatchNumber)
	}
	return strings.TrimSpace(s)
}

// identifyRule pairs a guard over (function, substatus1, substatus2) with
// the changes it makes to the default classification.
type identifyRule struct {
	name  string
	match func(h Header) bool
	apply func(c *Classification, h Header)
}

// identifyRules are tried in order; the first match wins.
var identifyRules = []identifyRule{
	{
		name: "one single, internal",
		match: func(h Header) bool {
			return h.Function == OnePatchDataDump && h.Substatus1 == 0x00 && h.Substatus2 <= 63
		},
		apply: func(c *Classification, h Header) {
			c.setPatch(h.Substatus2)
		},
	},
	{
		name: "one multi, internal",
		match: func(h Header) bool {
			return h.Function == OnePatchDataDump && h.Substatus1 == 0x00 &&
				h.Substatus2 >= 64 && h.Substatus2 <= 127
		},
		apply: func(c *Classification, h Header) {
			c.Kind = KindMulti
			c.setPatch(h.Substatus2)
		},
	},
	{
		name: "one single, external",
		match: func(h Header) bool {
			return h.Function == OnePatchDataDump && h.Substatus1 == 0x02 && h.Substatus2 <= 63
		},
		apply: func(c *Classification, h Header) {
			c.Cardinality = CardinalityOne
			c.Locality = LocalityExternal
			c.setPatch(h.Substatus2)
		},
	},
	{
		name: "all patches, internal",
		match: func(h Header) bool {
			return h.Function == AllPatchDataDump && h.Substatus1 == 0x00 && h.Substatus2 == 0x00
		},
		apply: func(c *Classification, h Header) {
			c.Kind = KindAll
			c.Cardinality = CardinalityBlock
		},
	},
	{
		name: "all patches, external",
		match: func(h Header) bool {
			return h.Function == AllPatchDataDump && h.Substatus1 == 0x02 && h.Substatus2 == 0x00
		},
		apply: func(c *Classification, h Header) {
			c.Kind = KindAll
			c.Cardinality = CardinalityBlock
			c.Locality = LocalityExternal
		},
	},
}

// Identify classifies the header. Headers that match no rule get the default
// classification (one internal single, no patch number); this is not an
// error.
func (h Header) Identify() Classification {
	c := defaultClassification()

	for _, rule := range identifyRules {
		if rule.match(h) {
			rule.apply(&c, h)
			logging.Debug("header classified",
				zap.String("rule", rule.name),
				zap.String("function", h.Function.String()),
				zap.String("classification", c.String()),
			)
			return c
		}
	}

	logging.Debug("header not recognised, using default classification",
		zap.String("function", h.Function.String()),
		zap.Uint8("substatus1", h.Substatus1),
		zap.Uint8("substatus2", h.Substatus2),
	)
	return c
}
