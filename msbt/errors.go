package msbt

import "errors"

// ErrNoTextSection is returned when an encode request has labels
// referencing a text index with no corresponding TXT2 entry.
var ErrNoTextSection = errors.New("msbt: label references missing text entry")
