package mapdef

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// symbolNames is the YAML vocabulary accepted for each Symbol, used by
// LegendFromYAML to translate a human-authored legend file into the
// map[rune]Symbol FromASCII/WithLegend expects.
var symbolNames = map[string]Symbol{
	"walkable":         SymbolWalkable,
	"blocked":          SymbolBlocked,
	"warehouse_anchor": SymbolWarehouseAnchor,
}

// LegendFromYAML parses a legend document of the form:
//
//	".": walkable
//	"#": blocked
//	"W": warehouse_anchor
//
// into the map[rune]Symbol accepted by WithLegend. Floor plans drawn with
// runes other than DefaultLegend's are authored this way rather than as a
// second Go map literal per deployment; each rune still maps to one of the
// three Symbols, and a legend carries no traversal cost.
func LegendFromYAML(data []byte) (map[rune]Symbol, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("mapdef: parse legend yaml: %w", err)
	}

	legend := make(map[rune]Symbol, len(raw))
	for key, name := range raw {
		runes := []rune(key)
		if len(runes) != 1 {
			return nil, fmt.Errorf("mapdef: legend key %q must be a single rune", key)
		}
		sym, ok := symbolNames[name]
		if !ok {
			return nil, fmt.Errorf("mapdef: legend value %q: %w", name, ErrUnknownSymbol)
		}
		legend[runes[0]] = sym
	}
	return legend, nil
}
