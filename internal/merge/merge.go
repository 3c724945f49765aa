// Package merge resolves the shared-library and customer-override
// document sets into the final ordered list of documents to convert.
package merge

import (
	"github.com/alevsk/sentinel-forge/internal/content"
	"github.com/alevsk/sentinel-forge/internal/logger"
	"github.com/alevsk/sentinel-forge/internal/store"
)

// Resolve applies the override and suppression precedence rules:
//
//  1. A document ID present in excludeIDs is dropped unconditionally,
//     from either source.
//  2. A customer document always wins over a shared document with the
//     same ID. The shared version is fully discarded, never
//     field-merged.
//  3. A shared document carrying a connector field whose value is not
//     an enabled connector is dropped. Gating applies only to shared
//     content; customer-authored documents are never gated.
//
// The output keeps all surviving customer documents first, in their
// enumeration order, followed by the surviving shared documents in
// theirs.
func Resolve(shared, customer []store.Entry, excludeIDs, enabledConnectorIDs []string) []store.Entry {
	excluded := toSet(excludeIDs)
	enabled := toSet(enabledConnectorIDs)

	result := make([]store.Entry, 0, len(customer)+len(shared))
	overridden := make(map[string]struct{}, len(customer))

	for _, entry := range customer {
		if _, drop := excluded[entry.ID]; drop {
			logger.Debug().Msgf("excluding customer document %s", entry.ID)
			continue
		}
		overridden[entry.ID] = struct{}{}
		result = append(result, entry)
	}

	for _, entry := range shared {
		if _, drop := excluded[entry.ID]; drop {
			logger.Debug().Msgf("excluding shared document %s", entry.ID)
			continue
		}
		if _, won := overridden[entry.ID]; won {
			logger.Debug().Msgf("shared document %s overridden by customer version", entry.ID)
			continue
		}
		if connector := content.GetValue(entry.Doc, "connector", "", false); connector != "" {
			if _, on := enabled[connector]; !on {
				logger.Debug().Msgf("shared document %s gated by disabled connector %s", entry.ID, connector)
				continue
			}
		}
		result = append(result, entry)
	}

	return result
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
