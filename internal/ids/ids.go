// Package ids generates entity identifiers. KSUIDs are time-sortable, so
// rows inserted later compare greater than earlier ones; default listing
// order relies on this as a tiebreak.
package ids

import "github.com/segmentio/ksuid"

func New() string {
	return ksuid.New().String()
}
